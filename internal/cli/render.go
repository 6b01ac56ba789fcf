package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/pipeline"
)

// renderCommand creates the render command for writing a graph document in
// display formats.
func (c *CLI) renderCommand() *cobra.Command {
	var output, formatsStr string

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph document to DOT or SVG",
		Long: `Render a graph document to DOT or SVG.

The input is a graph.json file produced by 'layout' or 'graph -f json'.
One file is written per format, named <base>.<format>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, formats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, formats []string) error {
	doc, err := graph.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	prog := newProgress(loggerFromContext(ctx))
	artifacts, err := pipeline.Render(ctx, doc, formats)
	if err != nil {
		return err
	}
	prog.done("rendered graph", "formats", formats, "nodes", len(doc.Nodes))

	base := strings.TrimSuffix(basePath(output, input), ".graph")
	paths, err := writeArtifacts(base, formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}
