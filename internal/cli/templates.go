// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/report"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newTemplatesCommand(opts *options) *cobra.Command {
	var (
		minCount   int
		skipDenied bool
	)

	cmd := &cobra.Command{
		Use:   "templates [dump]",
		Short: "Frequency table of line-opening template names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := wikitext.LoadVocabulary()
			if err != nil {
				return err
			}

			src, closer, err := openSource(opts, args)
			if err != nil {
				return err
			}
			defer closer.Close()

			tally := report.NewTally(0)

			scanned, err := scan(cmd.Context(), src, opts, func(page *dump.Page) error {
				if !page.InMainNamespace() {
					return nil
				}
				for _, name := range wikitext.ExtractTemplates(page.Text) {
					if skipDenied && vocab.Templates.Denied(name) {
						continue
					}
					tally.Observe(name, "")
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tally.RenderCounts(out, fmt.Sprintf("Template Usage Report (%d pages scanned)", scanned), minCount)
			fmt.Fprintf(out, "\nTotal unique templates: %d\n", len(tally.Rows()))
			return nil
		},
	}

	cmd.Flags().IntVar(&minCount, "min-count", 1, "only show templates with at least this many occurrences")
	cmd.Flags().BoolVar(&skipDenied, "skip-denied", false, "drop templates on the deny vocabulary")
	return cmd
}
