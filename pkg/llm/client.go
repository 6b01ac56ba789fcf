package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/matzehuels/graphologue/pkg/observability"
)

const (
	DefaultModel       = "gpt-3.5-turbo-instruct"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
	DefaultTimeout     = 60 * time.Second
)

var (
	// ErrNoAPIKey is returned by [NewClient] when no API key is configured.
	ErrNoAPIKey = errors.New("completion service API key not set")

	// ErrEmptyResponse is returned when the service answers without choices.
	ErrEmptyResponse = errors.New("completion response has no choices")
)

// Request is one completion call. Zero Temperature and MaxTokens use the
// defaults.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer produces a completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to [Completer].
type CompleterFunc func(ctx context.Context, req Request) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Config configures a [Client].
type Config struct {
	APIKey  string
	BaseURL string // empty for the public endpoint
	Model   string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the completions endpoint of an OpenAI-compatible service.
type Client struct {
	api   openai.Client
	model string
}

// NewClient creates a client. SDK retries are disabled so a failing call
// surfaces immediately.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(DefaultTimeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{api: openai.NewClient(opts...), model: model}, nil
}

// Model returns the model name sent with every request.
func (c *Client) Model() string { return c.model }

// Complete returns the text of the first choice.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if req.Temperature == 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	hooks := observability.Pipeline()
	hooks.OnCompletionStart(ctx, c.model)
	start := time.Now()

	text, err := c.complete(ctx, req)
	hooks.OnCompletionComplete(ctx, c.model, time.Since(start), err)
	return text, err
}

func (c *Client) complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.api.Completions.New(ctx, openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		TopP:        openai.Float(1),
	})
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimLeft(resp.Choices[0].Text, "\n"), nil
}

var _ Completer = (*Client)(nil)
