package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/graphologue/pkg/cache"
	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/observability"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// Layout builds the mind map for ts and lays it out with the named engine.
func (r *Runner) Layout(ctx context.Context, ts []relation.Triplet, engine string) (graph.Document, error) {
	doc, _, err := r.layout(ctx, ts, engine, false)
	return doc, err
}

func (r *Runner) layout(ctx context.Context, ts []relation.Triplet, engineName string, refresh bool) (graph.Document, bool, error) {
	if engineName == "" {
		engineName = DefaultEngine
	}
	engine, err := layout.ByName(engineName)
	if err != nil {
		return graph.Document{}, false, errors.Wrap(errors.ErrCodeInvalidEngine, err, "invalid engine")
	}

	hash, err := cache.HashJSON(ts)
	if err != nil {
		return graph.Document{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash triplets")
	}
	cfg := graph.Config()
	key := r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{
		Engine:  engineName,
		RankDir: string(cfg.RankDir),
		RankSep: cfg.RankSep,
		NodeSep: cfg.NodeSep,
	})

	hooks := observability.Cache()
	if !refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			if doc, err := graph.Unmarshal(data); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return doc, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	g := graph.Build(ts)
	ph := observability.Pipeline()
	ph.OnLayoutStart(ctx, engineName, g.NodeCount())
	start := time.Now()
	positions, err := graph.Layout(ctx, g, engine)
	ph.OnLayoutComplete(ctx, engineName, time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil {
			return graph.Document{}, false, errors.Wrap(errors.ErrCodeCanceled, err, "layout canceled")
		}
		return graph.Document{}, false, errors.Wrap(errors.ErrCodeInternal, err, "layout failed")
	}

	doc := graph.NewDocument(g, positions)
	if data, err := graph.Marshal(doc); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLLayout) == nil {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return doc, false, nil
}
