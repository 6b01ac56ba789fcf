package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphologue/pkg/cache"
	"github.com/matzehuels/graphologue/pkg/llm"
	"github.com/matzehuels/graphologue/pkg/observability"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// Relations turns a model response into mind-map triplets.
//
// Surrounding whitespace is ignored. Empty and sentinel responses yield no
// triplets without calling the completion service. Completion failures are
// logged and also yield no triplets; they are never returned to the caller.
func (r *Runner) Relations(ctx context.Context, response string) []relation.Triplet {
	ts, _ := r.relations(ctx, response, false, r.Logger)
	return ts
}

func (r *Runner) relations(ctx context.Context, response string, refresh bool, logger *log.Logger) ([]relation.Triplet, bool) {
	empty := []relation.Triplet{}
	response = strings.TrimSpace(response)
	if response == "" || llm.IsSentinel(response) {
		return empty, false
	}

	key := r.Keyer.RelationsKey(response, cache.RelationsKeyOpts{
		Model:     r.Model,
		ItemBreak: relation.DefaultItemBreak,
		Connector: relation.DefaultConnector,
	})
	hooks := observability.Cache()
	if !refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var ts []relation.Triplet
			if json.Unmarshal(data, &ts) == nil {
				hooks.OnCacheHit(ctx, "relations")
				return ts, true
			}
		}
		hooks.OnCacheMiss(ctx, "relations")
	}

	if r.Completer == nil {
		logger.Error("relation extraction skipped", "err", llm.ErrNoAPIKey)
		return empty, false
	}

	text, err := r.Completer.Complete(ctx, llm.Request{
		Prompt:      llm.TextToGraphPrompt(response),
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		logger.Error("completion failed", "err", err)
		return empty, false
	}
	if text == "" {
		return empty, false
	}

	start := time.Now()
	ts := relation.Extract(text)
	observability.Pipeline().OnExtract(ctx, len(ts), time.Since(start))

	if len(ts) > 0 {
		if data, err := json.Marshal(ts); err == nil {
			if r.Cache.Set(ctx, key, data, cache.TTLRelations) == nil {
				hooks.OnCacheSet(ctx, "relations", len(data))
			}
		}
	}
	return ts, false
}
