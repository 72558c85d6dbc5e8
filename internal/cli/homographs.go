// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/report"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newHomographsCommand(opts *options) *cobra.Command {
	var examples int

	cmd := &cobra.Command{
		Use:   "homographs [dump]",
		Short: "Detect homograph layouts: nested etymologies, flat POS, dividing pronunciations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := openSource(opts, args)
			if err != nil {
				return err
			}
			defer closer.Close()

			language := opts.primaryLanguage()
			tally := report.NewTally(examples)
			withSection := 0

			scanned, err := scan(cmd.Context(), src, opts, func(page *dump.Page) error {
				if !page.InMainNamespace() {
					return nil
				}
				headings, _ := wikitext.SplitByHeadings(page.Text)
				start, end, ok := wikitext.FindLanguageSection(headings, language)
				if !ok {
					tally.Observe("Other(no_language_section)", page.Title)
					return nil
				}
				withSection++
				pattern := wikitext.ClassifyHomographs(headings, start, end)
				tally.Observe(pattern.String(), page.Title)
				return nil
			})
			if err != nil {
				return err
			}

			title := fmt.Sprintf("Homograph Pattern Analysis\nLanguage: %s\n(%d pages scanned, %d with %s sections)",
				language, scanned, withSection, language)
			tally.Render(cmd.OutOrStdout(), title, tally.Observed())
			return nil
		},
	}

	cmd.Flags().IntVar(&examples, "examples", 3, "example titles to keep per pattern")
	return cmd
}
