package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/pipeline"
)

// layoutCommand creates the layout command for computing mind-map layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		engine  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [triplets.json]",
		Short: "Compute a mind-map layout from relation triplets",
		Long: `Compute a mind-map layout from relation triplets.

The layout command takes a triplets.json file (produced by 'relations'),
builds the mind-map graph and computes node positions. The output is a
graph.json document that 'render' turns into DOT or SVG.

Engines:
  layered   built-in layered layout (default)
  graphviz  Graphviz dot layout

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			if engine == "" {
				engine = c.cfg.Layout.Engine
			}
			return c.runLayout(cmd.Context(), args[0], engine, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: "+strings.Join(layout.Names(), ", "))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return layout.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runLayout loads the triplets, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, engine, output string, noCache bool) error {
	ts, err := readTriplets(input)
	if err != nil {
		return fmt.Errorf("load triplets %s: %w", input, err)
	}

	runner, backend, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", engine))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Triplets: ts,
		Engine:   engine,
		Formats:  []string{pipeline.FormatJSON},
		Refresh:  noCache,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".triplets")
		outputPath = base + ".graph.json"
	}
	if err := graph.WriteFile(result.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}
