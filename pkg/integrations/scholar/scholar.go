package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/matzehuels/graphologue/pkg/cache"
	"github.com/matzehuels/graphologue/pkg/integrations"
	"github.com/matzehuels/graphologue/pkg/observability"
)

const (
	// DefaultBaseURL is the Semantic Scholar API root.
	DefaultBaseURL = "https://api.semanticscholar.org"

	// DefaultFields are the paper fields requested from the search endpoint.
	DefaultFields = "paperId,title,authors,abstract,year,venue,url"

	// DefaultRateLimit is requests per second; the public API allows one
	// request per second per key.
	DefaultRateLimit = 1.0

	// DefaultPerKeyword is how many new papers each keyword contributes.
	DefaultPerKeyword = 1

	// DefaultConcurrency bounds the searches in flight for one batch.
	DefaultConcurrency = 4

	// DefaultCacheTTL is how long search responses are cached.
	DefaultCacheTTL = 24 * time.Hour
)

// ErrAPI is returned when the service answers with an error body.
var ErrAPI = errors.New("paper search error")

// Author is a paper author.
type Author struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

// Paper is one search hit.
type Paper struct {
	PaperID  string   `json:"paperId"`
	Title    string   `json:"title"`
	Authors  []Author `json:"authors"`
	Abstract string   `json:"abstract"`
	Year     int      `json:"year"`
	Venue    string   `json:"venue"`
	URL      string   `json:"url"`
}

// KeywordPaper is a paper tagged with the keyword whose search found it.
type KeywordPaper struct {
	Paper
	Keyword string `json:"keyword"`
}

// SearchResponse is the body of a search call. Error is set instead of
// Data when the service rejects the query.
type SearchResponse struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
	Error  string  `json:"error,omitempty"`
}

// Client queries the paper-search service.
type Client struct {
	*integrations.Client
	baseURL     string
	apiKey      string
	fields      string
	limiter     *rate.Limiter
	perKeyword  int
	concurrency int
	logger      *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL overrides the service root (tests, proxies). An empty url
// keeps the default.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.SetHTTPClient(hc) }
}

// WithRateLimit sets the request rate in requests per second. A value
// <= 0 disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithPerKeyword sets how many new papers each keyword may contribute.
func WithPerKeyword(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perKeyword = n
		}
	}
}

// WithConcurrency bounds concurrent searches in a batch.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRetries retries transient failures (5xx, 429, transport errors).
func WithRetries(attempts int) Option {
	return func(c *Client) { c.SetRetries(attempts) }
}

// WithKeyer sets the cache key scheme, typically a [cache.ScopedKeyer] so
// deployments sharing a Redis instance keep separate search entries.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.SetKeyer(k) }
}

// WithLogger sets the logger for skipped keywords.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a paper-search client caching responses in backend.
func NewClient(backend cache.Cache, ttl time.Duration, opts ...Option) *Client {
	c := &Client{
		Client: integrations.NewClient(backend, "scholar", ttl, map[string]string{
			"Accept": "application/json",
		}),
		baseURL:     DefaultBaseURL,
		fields:      DefaultFields,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		perKeyword:  DefaultPerKeyword,
		concurrency: DefaultConcurrency,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the search response for one keyword.
func (c *Client) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	url := fmt.Sprintf("%s/graph/v1/paper/search?query=%s&fields=%s",
		c.baseURL, integrations.URLEncode(keyword), c.fields)

	var resp SearchResponse
	err := c.Cached(ctx, keyword, false, &resp, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		resp = SearchResponse{}
		if err := c.GetWithHeaders(ctx, url, c.authHeaders(), &resp); err != nil {
			return err
		}
		if resp.Error != "" {
			return fmt.Errorf("%w: %s", ErrAPI, resp.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) authHeaders() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"x-api-key": c.apiKey}
}

// PapersForKeywords searches every non-empty keyword and merges the hits.
//
// A keyword whose search fails or returns no data contributes nothing.
// Each keyword contributes at most PerKeyword papers whose paperId has not
// been kept yet. The result follows keyword order. The error is non-nil
// only when ctx is done.
func (c *Client) PapersForKeywords(ctx context.Context, keywords []string) ([]KeywordPaper, error) {
	start := time.Now()
	results := make([]*SearchResponse, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, kw := range keywords {
		if kw == "" {
			continue
		}
		g.Go(func() error {
			resp, err := c.Search(gctx, kw)
			if err != nil {
				c.logger.Error("paper search failed", "keyword", kw, "err", err)
				return nil
			}
			results[i] = resp
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	papers := merge(keywords, results, c.perKeyword)
	observability.Pipeline().OnPapers(ctx, len(keywords), len(papers), time.Since(start))
	return papers, nil
}

// merge walks keywords in order and keeps up to perKeyword unseen papers
// from each response.
func merge(keywords []string, results []*SearchResponse, perKeyword int) []KeywordPaper {
	papers := []KeywordPaper{}
	seen := make(map[string]bool)
	for i, resp := range results {
		if resp == nil {
			continue
		}
		added := 0
		for _, p := range resp.Data {
			if added >= perKeyword {
				break
			}
			if seen[p.PaperID] {
				continue
			}
			seen[p.PaperID] = true
			papers = append(papers, KeywordPaper{Paper: p, Keyword: keywords[i]})
			added++
		}
	}
	return papers
}
