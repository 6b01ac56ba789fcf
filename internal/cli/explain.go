package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/errors"
)

// explainCommand asks the model to elaborate on a text.
func (c *CLI) explainCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "explain [text...]",
		Short: "Ask the model to elaborate on a text",
		Long: `Ask the model to elaborate on a text.

The text is taken from the arguments, or from --file ('-' for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if file != "" {
				data, err := readInput(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				text = string(data)
			}
			if err := errors.ValidateText(text); err != nil {
				return err
			}
			return c.runExplain(cmd.Context(), text)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file ('-' for stdin)")

	return cmd
}

func (c *CLI) runExplain(ctx context.Context, text string) error {
	runner, backend, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()

	spinner := newSpinnerWithContext(ctx, "Asking the model...")
	spinner.Start()
	out, err := runner.Explain(ctx, text)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, out)
	return nil
}
