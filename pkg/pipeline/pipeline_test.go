package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphologue/pkg/cache"
	gerrors "github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/llm"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// fakeCompleter returns a fixed text and counts calls.
type fakeCompleter struct {
	text   string
	err    error
	calls  atomic.Int32
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls.Add(1)
	f.prompt = req.Prompt
	return f.text, f.err
}

type fakeSearcher struct {
	papers []scholar.KeywordPaper
	err    error
}

func (f fakeSearcher) PapersForKeywords(context.Context, []string) ([]scholar.KeywordPaper, error) {
	return f.papers, f.err
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T, c llm.Completer) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	r.Completer = c
	return r
}

const modelOutput = "cell $$$ contains $$$ nucleus, membrane ### nucleus $$$ stores $$$ DNA ###"

func TestRelationsShortCircuit(t *testing.T) {
	inputs := []string{
		"",
		llm.ResponseModelDown,
		llm.ResponseNoValidModelText,
		llm.ResponseNoValidResponse,
		" \n\t",
		llm.ResponseModelDown + "\n",
		"\r\n" + llm.ResponseNoValidResponse + "\r\n",
	}
	for _, in := range inputs {
		fc := &fakeCompleter{text: modelOutput}
		r := newTestRunner(t, fc)

		ts := r.Relations(context.Background(), in)
		if ts == nil || len(ts) != 0 {
			t.Errorf("Relations(%q) = %v, want empty non-nil", in, ts)
		}
		if n := fc.calls.Load(); n != 0 {
			t.Errorf("Relations(%q) called the completion service %d times", in, n)
		}
	}
}

func TestRelationsExtracts(t *testing.T) {
	fc := &fakeCompleter{text: modelOutput}
	r := newTestRunner(t, fc)

	ts := r.Relations(context.Background(), "Cells have a nucleus and a membrane.")
	got := relation.ToStrings(ts)
	want := [][3]string{
		{"cell", "contains", "nucleus"},
		{"cell", "contains", "membrane"},
		{"nucleus", "stores", "DNA"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triplet %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !strings.Contains(fc.prompt, "Cells have a nucleus and a membrane.") {
		t.Errorf("prompt does not embed the response:\n%s", fc.prompt)
	}
}

func TestRelationsCompletionErrorIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	fc := &fakeCompleter{err: errors.New("service unavailable")}
	r := newTestRunner(t, fc)
	r.Logger = log.NewWithOptions(&buf, log.Options{})

	ts := r.Relations(context.Background(), "some answer")
	if len(ts) != 0 {
		t.Errorf("got %v, want no triplets", ts)
	}
	if !strings.Contains(buf.String(), "service unavailable") {
		t.Errorf("error not logged: %q", buf.String())
	}
}

func TestRelationsEmptyCompletion(t *testing.T) {
	r := newTestRunner(t, &fakeCompleter{text: ""})
	if ts := r.Relations(context.Background(), "answer"); len(ts) != 0 {
		t.Errorf("got %v, want no triplets", ts)
	}
}

func TestRelationsWithoutCompleter(t *testing.T) {
	r := newTestRunner(t, nil)
	if ts := r.Relations(context.Background(), "answer"); len(ts) != 0 {
		t.Errorf("got %v, want no triplets", ts)
	}
}

func TestRelationsCached(t *testing.T) {
	fc := &fakeCompleter{text: modelOutput}
	r := newTestRunner(t, fc)
	ctx := context.Background()

	first := r.Relations(ctx, "answer")
	second := r.Relations(ctx, "answer")
	if n := fc.calls.Load(); n != 1 {
		t.Errorf("completion calls = %d, want 1", n)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}

	_, hit := r.relations(ctx, "answer", true, r.Logger)
	if hit || fc.calls.Load() != 2 {
		t.Error("refresh should bypass the cache")
	}
}

func TestLayout(t *testing.T) {
	r := newTestRunner(t, nil)
	ts := []relation.Triplet{
		relation.New("sun", "emits", "light"),
		relation.New("sun", "emits", "heat"),
	}

	doc, err := r.Layout(context.Background(), ts, "")
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 || len(doc.Positions) != 3 {
		t.Fatalf("doc = %d nodes, %d edges, %d positions", len(doc.Nodes), len(doc.Edges), len(doc.Positions))
	}
	sun, _ := doc.Position("sun")
	light, _ := doc.Position("light")
	if sun.X >= light.X {
		t.Errorf("sun.X = %v should be left of light.X = %v", sun.X, light.X)
	}
}

func TestLayoutInvalidEngine(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Layout(context.Background(), nil, "spring")
	if !gerrors.Is(err, gerrors.ErrCodeInvalidEngine) {
		t.Errorf("err = %v, want INVALID_ENGINE", err)
	}
}

func TestLayoutEmpty(t *testing.T) {
	r := newTestRunner(t, nil)
	doc, err := r.Layout(context.Background(), nil, "layered")
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(doc.Nodes) != 0 || len(doc.Positions) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestExecute(t *testing.T) {
	fc := &fakeCompleter{text: modelOutput}
	r := newTestRunner(t, fc)
	ctx := context.Background()

	opts := Options{Response: "answer", Formats: []string{FormatJSON, FormatDOT}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.TripletCount != 3 || res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.CacheInfo.RelationsHit || res.CacheInfo.LayoutHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}

	doc, err := graph.Unmarshal(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Positions) != 4 {
		t.Errorf("positions = %d, want 4", len(doc.Positions))
	}
	if !bytes.HasPrefix(res.Artifacts[FormatDOT], []byte("digraph")) {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.RelationsHit || !again.CacheInfo.LayoutHit {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}
}

func TestExecuteLogsToRunLogger(t *testing.T) {
	var runnerBuf, runBuf bytes.Buffer
	fc := &fakeCompleter{err: errors.New("service unavailable")}
	r := newTestRunner(t, fc)
	r.Logger = log.NewWithOptions(&runnerBuf, log.Options{})

	_, err := r.Execute(context.Background(), Options{
		Response: "answer",
		Logger:   log.NewWithOptions(&runBuf, log.Options{}),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"service unavailable", "computed layout", "rendered outputs"} {
		if !strings.Contains(runBuf.String(), want) {
			t.Errorf("run log missing %q: %q", want, runBuf.String())
		}
	}
	if runnerBuf.Len() != 0 {
		t.Errorf("runner logger used for a run with its own logger: %q", runnerBuf.String())
	}
}

func TestExecuteWithTriplets(t *testing.T) {
	fc := &fakeCompleter{text: modelOutput}
	r := newTestRunner(t, fc)

	res, err := r.Execute(context.Background(), Options{
		Triplets: []relation.Triplet{relation.New("a", "b", "c")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fc.calls.Load() != 0 {
		t.Error("explicit triplets should skip the completion service")
	}
	if _, ok := res.Artifacts[FormatJSON]; !ok {
		t.Error("json should be the default format")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := newTestRunner(t, nil)
	tests := []struct {
		name string
		opts Options
		code gerrors.Code
	}{
		{"format", Options{Formats: []string{"png"}}, gerrors.ErrCodeInvalidFormat},
		{"engine", Options{Engine: "force"}, gerrors.ErrCodeInvalidEngine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !gerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestPapers(t *testing.T) {
	r := newTestRunner(t, nil)
	if _, err := r.Papers(context.Background(), []string{"x"}); !gerrors.Is(err, gerrors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}

	want := []scholar.KeywordPaper{{Paper: scholar.Paper{PaperID: "p1"}, Keyword: "x"}}
	r.Scholar = fakeSearcher{papers: want}
	got, err := r.Papers(context.Background(), []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PaperID != "p1" {
		t.Errorf("got %+v", got)
	}

	r.Scholar = fakeSearcher{err: context.Canceled}
	if _, err := r.Papers(context.Background(), []string{"x"}); !gerrors.Is(err, gerrors.ErrCodeCanceled) {
		t.Errorf("err = %v, want CANCELED", err)
	}
}

func TestExplain(t *testing.T) {
	fc := &fakeCompleter{text: "\n  Photosynthesis turns light into sugar.  "}
	r := newTestRunner(t, fc)

	got, err := r.Explain(context.Background(), "photosynthesis")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Photosynthesis turns light into sugar." {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(fc.prompt, "photosynthesis") {
		t.Errorf("prompt = %q", fc.prompt)
	}

	if _, err := r.Explain(context.Background(), llm.ResponseModelDown); !gerrors.Is(err, gerrors.ErrCodeInvalidInput) {
		t.Errorf("sentinel: err = %v, want INVALID_INPUT", err)
	}

	fc.err = errors.New("down")
	if _, err := r.Explain(context.Background(), "x"); !gerrors.Is(err, gerrors.ErrCodeUpstream) {
		t.Errorf("err = %v, want UPSTREAM_ERROR", err)
	}
}
