package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphologue/pkg/cache"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/llm"
)

// PaperSearcher finds papers for a keyword batch.
type PaperSearcher interface {
	PapersForKeywords(ctx context.Context, keywords []string) ([]scholar.KeywordPaper, error)
}

// Runner executes pipeline stages with caching.
//
// Completer and Scholar are optional; the stages that need them report an
// error (or, for relations, an empty result) when they are missing.
// A Runner holds no per-run state and is safe for concurrent use.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	Completer llm.Completer
	Scholar   PaperSearcher

	// Model names the completion model in relation cache keys.
	Model string
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Model:  llm.DefaultModel,
	}
}

// Execute runs relations → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	ts := opts.Triplets
	if ts == nil {
		start := time.Now()
		var hit bool
		ts, hit = r.relations(ctx, opts.Response, opts.Refresh, opts.Logger)
		result.Stats.RelationsTime = time.Since(start)
		result.CacheInfo.RelationsHit = hit
		opts.Logger.Info("extracted relations",
			"triplets", len(ts),
			"cached", hit,
			"duration", result.Stats.RelationsTime)
	}
	result.Triplets = ts
	result.Stats.TripletCount = len(ts)

	start := time.Now()
	doc, hit, err := r.layout(ctx, ts, opts.Engine, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.NodeCount = len(doc.Nodes)
	result.Stats.EdgeCount = len(doc.Edges)
	result.CacheInfo.LayoutHit = hit
	opts.Logger.Info("computed layout",
		"engine", opts.Engine,
		"nodes", len(doc.Nodes),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, err := Render(ctx, doc, opts.Formats)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// applyLogger makes a run without its own logger use the runner's.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
