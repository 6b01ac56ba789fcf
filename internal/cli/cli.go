package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/internal/config"
	"github.com/matzehuels/graphologue/pkg/buildinfo"
	"github.com/matzehuels/graphologue/pkg/cache"
	gerrors "github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
	"github.com/matzehuels/graphologue/pkg/llm"
	"github.com/matzehuels/graphologue/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "graphologue"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graphologue turns model answers into mind maps",
		Long: `Graphologue asks a language model to restate its answers as relation
triplets, builds a mind-map graph from them and lays it out for display.
It can also look up supporting papers for keywords and ask the model to
elaborate on a piece of text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir)")

	root.AddCommand(c.relationsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.papersCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the loaded configuration. The
// returned cache must be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, cache.Cache, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}

	var keyer cache.Keyer
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.cfg.Cache.Prefix)
	}
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	if c.cfg.Completion.Model != "" {
		runner.Model = c.cfg.Completion.Model
	}

	completer, err := llm.NewClient(llm.Config{
		APIKey:  c.cfg.Completion.APIKey,
		BaseURL: c.cfg.Completion.BaseURL,
		Model:   c.cfg.Completion.Model,
	})
	switch {
	case err == nil:
		runner.Completer = completer
	case errors.Is(err, llm.ErrNoAPIKey):
		c.Logger.Debug("completion service disabled", "reason", err)
	default:
		backend.Close()
		return nil, nil, fmt.Errorf("completion client: %w", err)
	}

	sc := c.cfg.Scholar
	runner.Scholar = scholar.NewClient(backend, c.cfg.Cache.TTL.Duration,
		scholar.WithAPIKey(sc.APIKey),
		scholar.WithBaseURL(sc.BaseURL),
		scholar.WithRateLimit(sc.RateLimit),
		scholar.WithPerKeyword(sc.PerKeyword),
		scholar.WithConcurrency(sc.Concurrency),
		scholar.WithRetries(sc.Retries),
		scholar.WithKeyer(keyer),
		scholar.WithLogger(c.Logger),
	)
	return runner, backend, nil
}

// newCache picks Redis when configured, the file cache otherwise. A file
// cache that cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.cfg.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Input and Output Helpers
// =============================================================================

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// readAnswer reads a model answer with surrounding whitespace removed, so a
// placeholder answer saved with a trailing newline is still recognized.
func readAnswer(path string) (string, error) {
	data, err := readInput(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the extension of input is stripped; a known format
// extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// checkOutput validates an --output flag; empty and "-" mean defaults.
func checkOutput(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	return gerrors.ValidatePath(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// writeArtifacts writes one file per format as base.format, in the order
// formats were requested.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + f
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty
// or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
