// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/report"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newHeadingsCommand(opts *options) *cobra.Command {
	var (
		minCount    int
		allowedOnly bool
		skipDenied  bool
	)

	cmd := &cobra.Command{
		Use:   "headings [dump]",
		Short: "Frequency table of normalized heading texts",
		Long: "Counts the headings of every main-namespace entry, normalized so\n" +
			"numbered variants group together (\"Etymology 1\" counts as\n" +
			"\"Etymology\"). The allow/deny vocabulary can filter the table down\n" +
			"to the structurally interesting headings.",
		Args: cobra.MaximumNArgs(1),
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
				headings, _ := wikitext.SplitByHeadings(page.Text)
				for _, h := range headings {
					if h.Level == 2 {
						// Language headings would swamp the table.
						continue
					}
					if allowedOnly && !vocab.Headings.Allowed(h.Text) {
						continue
					}
					if skipDenied && vocab.Headings.Denied(h.Text) {
						continue
					}
					tally.Observe(wikitext.NormalizeHeading(h.Text), "")
				}
				return nil
			})
			if err != nil {
				return err
			}

			tally.RenderCounts(cmd.OutOrStdout(),
				fmt.Sprintf("Heading Frequency Report (%d pages scanned)", scanned), minCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&minCount, "min-count", 1, "only show headings with at least this many occurrences")
	cmd.Flags().BoolVar(&allowedOnly, "allowed-only", false, "only count headings on the allow vocabulary")
	cmd.Flags().BoolVar(&skipDenied, "skip-denied", false, "drop headings on the deny vocabulary")
	return cmd
}
