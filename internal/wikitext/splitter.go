// SPDX-License-Identifier: Apache-2.0

// Package wikitext models the heading structure of one page's markup.
//
// The model follows the MediaWiki approach: split the text once into an
// ordered heading list plus interleaved content chunks, then derive all
// nesting from heading levels. Structure parsing stays separate from
// semantic interpretation, so the classification rules can change without
// touching the splitter.
package wikitext

import (
	"fmt"
	"strings"
)

// Heading is one ==...== line. Level counts the '=' delimiters on each
// side (2 for a language heading, 3 for a section, and so on). Text is the
// trimmed content between the delimiters.
type Heading struct {
	Level int
	Text  string
}

func (h Heading) String() string {
	return fmt.Sprintf("L%d: %s", h.Level, h.Text)
}

// SplitByHeadings splits wikitext into its headings and the content chunks
// between them, in one linear pass over the lines.
//
// chunks[0] is the prologue before the first heading; chunks[i] is the
// text under headings[i-1]. Always len(chunks) == len(headings)+1, and
// chunks are newline-joined without a trailing newline.
func SplitByHeadings(text string) ([]Heading, []string) {
	var headings []Heading
	var chunks []string
	var current strings.Builder

	for _, line := range lines(text) {
		heading, ok := ParseHeading(line)
		if !ok {
			if current.Len() > 0 {
				current.WriteByte('\n')
			}
			current.WriteString(line)
			continue
		}
		chunks = append(chunks, current.String())
		current.Reset()
		headings = append(headings, heading)
	}
	chunks = append(chunks, current.String())

	return headings, chunks
}

// ParseHeading reports whether a line is a valid heading and returns it.
// A valid heading has a leading run of at least two '=' characters, a
// trailing run of exactly the same length, and the two runs must not cover
// the whole trimmed line.
func ParseHeading(line string) (Heading, bool) {
	trimmed := strings.TrimSpace(line)

	leading := 0
	for leading < len(trimmed) && trimmed[leading] == '=' {
		leading++
	}
	if leading < 2 {
		return Heading{}, false
	}
	trailing := 0
	for trailing < len(trimmed) && trimmed[len(trimmed)-1-trailing] == '=' {
		trailing++
	}
	if leading != trailing || leading*2 >= len(trimmed) {
		return Heading{}, false
	}

	return Heading{
		Level: leading,
		Text:  strings.TrimSpace(trimmed[leading : len(trimmed)-trailing]),
	}, true
}

// FindLanguageSection locates the span of headings belonging to one
// language: the first level-2 heading whose text contains language
// (case-sensitive) up to, but not including, the next level-2 heading.
// headings[start:end] is the section; the matching content chunks are
// chunks[start+1 : end+1].
func FindLanguageSection(headings []Heading, language string) (start, end int, ok bool) {
	start = -1
	for i, h := range headings {
		if h.Level == 2 && strings.Contains(h.Text, language) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	for end = start + 1; end < len(headings); end++ {
		if headings[end].Level == 2 {
			break
		}
	}
	return start, end, true
}

// L3Headings returns the indices of the level-3 headings within
// headings[start:end], in order.
func L3Headings(headings []Heading, start, end int) []int {
	var indices []int
	for i := start; i < end; i++ {
		if headings[i].Level == 3 {
			indices = append(indices, i)
		}
	}
	return indices
}

// ContentForHeading returns the content chunk under the heading at the
// given index, or "" when the index is out of range.
func ContentForHeading(chunks []string, headingIdx int) string {
	if headingIdx+1 < 0 || headingIdx+1 >= len(chunks) {
		return ""
	}
	return chunks[headingIdx+1]
}

// HasLevelSkip reports whether the heading sequence ever descends by more
// than one level at once, for example a ===...=== directly followed by a
// =====...=====. Ascending or staying level is never a skip.
func HasLevelSkip(headings []Heading) bool {
	for i := 0; i+1 < len(headings); i++ {
		if headings[i+1].Level > headings[i].Level+1 {
			return true
		}
	}
	return false
}

// lines splits on '\n' the way a line iterator would: a trailing newline
// yields no empty final line, and any '\r' before the '\n' is dropped.
func lines(text string) []string {
	split := strings.Split(text, "\n")
	if n := len(split); n > 0 && split[n-1] == "" {
		split = split[:n-1]
	}
	for i, line := range split {
		split[i] = strings.TrimSuffix(line, "\r")
	}
	return split
}
