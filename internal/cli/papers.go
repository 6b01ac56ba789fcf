package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/integrations/scholar"
)

// papersCommand finds supporting papers for keywords.
func (c *CLI) papersCommand() *cobra.Command {
	var (
		asJSON     bool
		noCache    bool
		perKeyword int
	)

	cmd := &cobra.Command{
		Use:   "papers keyword [keyword...]",
		Short: "Find supporting papers for keywords",
		Long: `Find supporting papers for keywords.

Each keyword is searched separately. Papers are listed in keyword order and
each paper appears at most once, under the first keyword that found it.
Keywords whose search fails are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateKeywords(args); err != nil {
				return err
			}
			if perKeyword > 0 {
				c.cfg.Scholar.PerKeyword = perKeyword
			}
			return c.runPapers(cmd.Context(), args, asJSON, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&perKeyword, "per-keyword", "n", 0, "papers per keyword (default from config)")

	return cmd
}

func (c *CLI) runPapers(ctx context.Context, keywords []string, asJSON, noCache bool) error {
	runner, backend, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()

	spinner := newSpinnerWithContext(ctx, "Searching papers...")
	spinner.Start()
	papers, err := runner.Papers(ctx, keywords)
	spinner.Stop()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if papers == nil {
			papers = []scholar.KeywordPaper{}
		}
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		printWarning("No papers found")
		return nil
	}
	printSuccess("Found %d paper(s)", len(papers))
	for _, p := range papers {
		printNewline()
		printPaper(p)
	}
	return nil
}

func printPaper(p scholar.KeywordPaper) {
	writeLine(StyleTitle.Render(p.Title))
	printKeyValue("keyword", p.Keyword)
	if names := authorNames(p.Authors); names != "" {
		printKeyValue("authors", names)
	}
	if p.Year > 0 {
		printKeyValue("year", fmt.Sprint(p.Year))
	}
	if p.Venue != "" {
		printKeyValue("venue", p.Venue)
	}
	if p.URL != "" {
		printKeyValue("url", StyleLink.Render(p.URL))
	}
}

// authorNames joins up to three author names, abbreviating the rest.
func authorNames(authors []scholar.Author) string {
	const shown = 3
	names := make([]string, 0, shown)
	for i, a := range authors {
		if i == shown {
			break
		}
		names = append(names, a.Name)
	}
	s := strings.Join(names, ", ")
	if len(authors) > shown {
		s += " et al."
	}
	return s
}
