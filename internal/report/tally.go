// SPDX-License-Identifier: Apache-2.0

// Package report accumulates frequency tables for the structure analyses.
// Pure accumulation and rendering; it knows nothing about dumps or
// wikitext.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Tally counts occurrences per key and keeps up to a fixed number of
// example labels for each.
type Tally struct {
	counts      map[string]int
	examples    map[string][]string
	maxExamples int
	observed    int
}

// NewTally returns an empty tally keeping at most maxExamples example
// labels per key.
func NewTally(maxExamples int) *Tally {
	return &Tally{
		counts:      make(map[string]int),
		examples:    make(map[string][]string),
		maxExamples: maxExamples,
	}
}

// Observe counts one occurrence of key. A non-empty example label is kept
// until the per-key cap is reached.
func (t *Tally) Observe(key, example string) {
	t.counts[key]++
	t.observed++
	if example != "" && len(t.examples[key]) < t.maxExamples {
		t.examples[key] = append(t.examples[key], example)
	}
}

// Observed returns the total number of observations.
func (t *Tally) Observed() int {
	return t.observed
}

// Row is one line of the rendered table.
type Row struct {
	Key      string
	Count    int
	Examples []string
}

// Rows returns the tally ordered by count, highest first; ties order by
// key so the output is deterministic.
func (t *Tally) Rows() []Row {
	rows := make([]Row, 0, len(t.counts))
	for key, count := range t.counts {
		rows = append(rows, Row{Key: key, Count: count, Examples: t.examples[key]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// Render writes the tally as a percentage table. total is the population
// the percentages refer to, typically the number of pages scanned, which
// may exceed the number of observations.
func (t *Tally) Render(w io.Writer, title string, total int) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	for _, row := range t.Rows() {
		pct := 0
		if total > 0 {
			pct = row.Count * 100 / total
		}
		fmt.Fprintf(w, "%3d%% (%6d pages) - %s\n", pct, row.Count, row.Key)
		if len(row.Examples) > 0 {
			fmt.Fprintf(w, "               Examples: %s\n", strings.Join(row.Examples, ", "))
		}
		fmt.Fprintln(w)
	}
}

// RenderCounts writes a plain name-count table ordered by count, highest
// first, skipping rows below minCount.
func (t *Tally) RenderCounts(w io.Writer, title string, minCount int) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	for _, row := range t.Rows() {
		if row.Count < minCount {
			continue
		}
		fmt.Fprintf(w, "%-30s %6d\n", row.Key, row.Count)
	}
}
