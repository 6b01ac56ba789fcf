package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/pipeline"
)

// graphCommand runs the whole pipeline in one go.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		engine     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "graph [answer.txt|-]",
		Short: "Turn a model answer into a rendered mind map",
		Long: `Turn a model answer into a rendered mind map.

Runs relations, layout and render in sequence. Use '-' to read the answer
from stdin. One file is written per format, named <base>.<format>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			if engine == "" {
				engine = c.cfg.Layout.Engine
			}
			opts := pipeline.Options{
				Engine:  engine,
				Formats: parseFormats(formatsStr),
				Refresh: noCache,
				Logger:  c.Logger,
			}
			return c.runGraph(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: "+strings.Join(layout.Names(), ", "))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, output string, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	text, err := readAnswer(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if text != "" {
		if err := errors.ValidateText(text); err != nil {
			return err
		}
	}
	opts.Response = text

	runner, backend, err := c.newRunner(ctx, opts.Refresh)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()
	if runner.Completer == nil {
		printWarning("No completion API key configured; the mind map will be empty")
	}

	spinner := newSpinnerWithContext(ctx, "Building mind map...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Pipeline failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(basePath(output, input), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Built mind map from %d relations", result.Stats.TripletCount)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RelationsHit && result.CacheInfo.LayoutHit)
	return nil
}
