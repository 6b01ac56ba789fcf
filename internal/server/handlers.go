package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/pipeline"
	"github.com/matzehuels/graphologue/pkg/relation"
)

type textRequest struct {
	Text string `json:"text"`
}

type relationsResponse struct {
	Triplets []relation.Triplet `json:"triplets"`
}

type layoutRequest struct {
	Triplets []relation.Triplet `json:"triplets"`
	Engine   string             `json:"engine,omitempty"`
}

type graphResponse struct {
	Triplets  []relation.Triplet `json:"triplets"`
	Document  graph.Document     `json:"document"`
	Artifacts map[string]string  `json:"artifacts,omitempty"`
	Stats     graphStats         `json:"stats"`
}

type graphStats struct {
	Triplets     int  `json:"triplets"`
	Nodes        int  `json:"nodes"`
	Edges        int  `json:"edges"`
	RelationsHit bool `json:"relations_cached"`
	LayoutHit    bool `json:"layout_cached"`
}

type papersResponse struct {
	Papers []scholar.KeywordPaper `json:"papers"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) relations(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Text != "" {
		if err := errors.ValidateText(req.Text); err != nil {
			s.writeError(w, err)
			return
		}
	}
	ts := s.runner.Relations(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, relationsResponse{Triplets: ts})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	engine := req.Engine
	if engine == "" {
		engine = pipeline.DefaultEngine
	}
	doc, err := s.runner.Layout(r.Context(), req.Triplets, engine)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) {
		return
	}
	if opts.Triplets == nil && opts.Response != "" {
		if err := errors.ValidateText(opts.Response); err != nil {
			s.writeError(w, err)
			return
		}
	}
	opts.Logger = s.logger.With("request_id", w.Header().Get(requestIDHeader))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := graphResponse{
		Triplets: result.Triplets,
		Document: result.Document,
		Stats: graphStats{
			Triplets:     result.Stats.TripletCount,
			Nodes:        result.Stats.NodeCount,
			Edges:        result.Stats.EdgeCount,
			RelationsHit: result.CacheInfo.RelationsHit,
			LayoutHit:    result.CacheInfo.LayoutHit,
		},
	}
	// The document is already inlined; only text formats are attached.
	for format, data := range result.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) papers(w http.ResponseWriter, r *http.Request) {
	keywords := r.URL.Query()["keyword"]
	if err := errors.ValidateKeywords(keywords); err != nil {
		s.writeError(w, err)
		return
	}
	papers, err := s.runner.Papers(r.Context(), keywords)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if papers == nil {
		papers = []scholar.KeywordPaper{}
	}
	writeJSON(w, http.StatusOK, papersResponse{Papers: papers})
}

func (s *Server) explain(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := errors.ValidateText(req.Text); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.runner.Explain(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, explainResponse{Explanation: out})
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "content type must be application/json"))
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
