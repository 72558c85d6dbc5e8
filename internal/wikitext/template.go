// SPDX-License-Identifier: Apache-2.0

package wikitext

import "strings"

// ExtractTemplates returns the names of the {{template}} invocations that
// open a line of the given wikitext (leading whitespace allowed), in order
// of appearance. The name runs up to the first '|' or the closing braces;
// namespace-style colons ("R:Webster 1913") stay part of the name.
// Mid-line invocations are ignored: the line-opening ones are the
// structural templates (headword lines, form-of definitions), which is
// what template frequency analysis is after.
func ExtractTemplates(text string) []string {
	var names []string
	for _, line := range lines(text) {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "{{") {
			continue
		}
		name := trimmed[2:]
		if i := strings.IndexAny(name, "|}"); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
