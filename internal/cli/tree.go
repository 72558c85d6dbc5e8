// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/dump"
	"github.com/wiktersproj/wikters/internal/wikitext"
)

func newTreeCommand(opts *options) *cobra.Command {
	var (
		title    string
		mainOnly bool
	)

	cmd := &cobra.Command{
		Use:   "tree [dump]",
		Short: "Print the heading tree of one entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := openSource(opts, args)
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			found := false

			_, err = scan(cmd.Context(), src, opts, func(page *dump.Page) error {
				if page.Title != title {
					return nil
				}
				found = true
				fmt.Fprintf(out, "Found: %s\n\n", page.Title)

				headings, _ := wikitext.SplitByHeadings(page.Text)
				if mainOnly {
					printLanguageSections(out, headings, opts.languages)
				} else {
					fmt.Fprintf(out, "Full structure (%d headings):\n", len(headings))
					fmt.Fprintln(out, strings.Repeat("=", 50))
					for _, h := range headings {
						fmt.Fprintf(out, "%s%s\n", indentFor(h.Level), h)
					}
				}
				return errFound
			})
			if err != nil && err != errFound {
				return err
			}
			if !found {
				fmt.Fprintf(out, "Entry not found: %s\n", title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title of the entry to display")
	cmd.Flags().BoolVar(&mainOnly, "main-only", false, "only show the configured language sections")
	cmd.MarkFlagRequired("title")
	return cmd
}

// errFound stops the scan once the requested entry has been printed.
var errFound = fmt.Errorf("entry found")

func printLanguageSections(out io.Writer, headings []wikitext.Heading, languages []string) {
	shown := 0
	for _, lang := range languages {
		start, end, ok := wikitext.FindLanguageSection(headings, lang)
		if !ok {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(out)
		}
		shown++

		fmt.Fprintf(out, "%s:\n", headings[start].Text)
		fmt.Fprintln(out, strings.Repeat("=", 50))
		for _, h := range headings[start+1 : end] {
			fmt.Fprintf(out, "%s%s\n", indentFor(h.Level), h)
		}
	}
}

func indentFor(level int) string {
	if level <= 2 {
		return ""
	}
	return strings.Repeat("  ", level-2)
}
