package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/llm"
)

// Papers finds supporting papers for keywords. Keywords that fail are
// skipped; only a missing search client or a canceled context is an error.
func (r *Runner) Papers(ctx context.Context, keywords []string) ([]scholar.KeywordPaper, error) {
	if r.Scholar == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "paper search is not configured")
	}
	start := time.Now()
	papers, err := r.Scholar.PapersForKeywords(ctx, keywords)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "paper search canceled")
	}
	r.Logger.Info("found papers", "keywords", len(keywords), "papers", len(papers), "duration", time.Since(start))
	return papers, nil
}

// Explain asks the completion service to elaborate on text.
func (r *Runner) Explain(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" || llm.IsSentinel(text) {
		return "", errors.New(errors.ErrCodeInvalidInput, "nothing to explain")
	}
	if r.Completer == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "completion service is not configured")
	}
	out, err := r.Completer.Complete(ctx, llm.Request{
		Prompt:      llm.ExplainPrompt(text),
		Temperature: llm.DefaultTemperature,
		MaxTokens:   llm.DefaultMaxTokens,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUpstream, err, "completion failed")
	}
	return strings.TrimSpace(out), nil
}
