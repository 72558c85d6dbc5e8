// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/report"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newPatternsCommand(opts *options) *cobra.Command {
	var examples int

	cmd := &cobra.Command{
		Use:   "patterns [dump]",
		Short: "Frequency table of structural patterns per language section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := openSource(opts, args)
			if err != nil {
				return err
			}
			defer closer.Close()

			tallies := make(map[string]*report.Tally, len(opts.languages))
			for _, lang := range opts.languages {
				tallies[lang] = report.NewTally(examples)
			}

			scanned, err := scan(cmd.Context(), src, opts, func(page *dump.Page) error {
				if !page.InMainNamespace() {
					return nil
				}
				headings, _ := wikitext.SplitByHeadings(page.Text)
				for _, lang := range opts.languages {
					start, end, ok := wikitext.FindLanguageSection(headings, lang)
					if !ok {
						continue
					}
					pattern := wikitext.ClassifySection(headings, start, end)
					tallies[lang].Observe(pattern.String(), page.Title)
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, lang := range opts.languages {
				if i > 0 {
					fmt.Fprintln(out)
				}
				title := fmt.Sprintf("Structural Pattern Analysis\nLanguage: %s\n(%d pages scanned, %d with %s sections)",
					lang, scanned, tallies[lang].Observed(), lang)
				tallies[lang].Render(out, title, tallies[lang].Observed())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&examples, "examples", 4, "example titles to keep per pattern")
	return cmd
}
