// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newSkipsCommand(opts *options) *cobra.Command {
	var examples int

	cmd := &cobra.Command{
		Use:   "skips [dump]",
		Short: "Find entries whose headings skip a level, e.g. === directly to =====",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := openSource(opts, args)
			if err != nil {
				return err
			}
			defer closer.Close()

			var found []string
			skipped := 0

			scanned, err := scan(cmd.Context(), src, opts, func(page *dump.Page) error {
				if !page.InMainNamespace() {
					return nil
				}
				headings, _ := wikitext.SplitByHeadings(page.Text)
				if !wikitext.HasLevelSkip(headings) {
					return nil
				}
				skipped++
				if len(found) < examples {
					found = append(found, page.Title)
				}
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned: %d pages\n", scanned)
			fmt.Fprintf(out, "Found %d entries with level skips:\n", skipped)
			for _, title := range found {
				fmt.Fprintf(out, "  - %s\n", title)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&examples, "examples", 5, "show at most this many entry titles")
	return cmd
}
