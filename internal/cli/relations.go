package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// relationsCommand creates the relations command, the first pipeline stage.
func (c *CLI) relationsCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "relations [answer.txt|-]",
		Short: "Extract relation triplets from a model answer",
		Long: `Extract relation triplets from a model answer.

The answer is sent to the completion service, which restates it as
subject/predicate/object relations. The result is a triplets.json file that
the 'layout' command turns into a graph. Use '-' to read the answer from
stdin.

An empty answer, or one of the placeholder answers shown when the model is
unavailable, yields an empty list without contacting the service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return c.runRelations(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.triplets.json, stdout for '-')")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRelations(ctx context.Context, input, output string, noCache bool) error {
	text, err := readAnswer(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if text != "" {
		if err := errors.ValidateText(text); err != nil {
			return err
		}
	}

	runner, backend, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()
	if runner.Completer == nil {
		printWarning("No completion API key configured; relations will be empty")
	}

	spinner := newSpinnerWithContext(ctx, "Extracting relations...")
	spinner.Start()
	ts := runner.Relations(ctx, text)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" && input != "-" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".triplets.json"
	}
	if err := writeTriplets(ts, outputPath); err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		return nil
	}
	printSuccess("Extracted %d relations", len(ts))
	printFile(outputPath)
	printNewline()
	printNextStep("Lay out", appName+" layout "+outputPath)
	return nil
}

func writeTriplets(ts []relation.Triplet, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ts)
}

func readTriplets(path string) ([]relation.Triplet, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var ts []relation.Triplet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid triplets file %s", path)
	}
	if ts == nil {
		ts = []relation.Triplet{}
	}
	return ts, nil
}
