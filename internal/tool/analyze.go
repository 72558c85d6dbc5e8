// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the structure analysis as MCP tools.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wiktersproj/wikters/internal/wikitext"
)

// MetadataAnalyzeEntryStructure describes the analyze_entry_structure tool.
var MetadataAnalyzeEntryStructure = &mcp.Tool{
	Name: "analyze_entry_structure",
	Description: "Analyze the heading structure of one dictionary entry's wikitext. " +
		"Returns the full heading tree with a semantic category per heading " +
		"(etymology, pronunciation, part of speech, other), plus the structural " +
		"pattern and homograph layout of the requested language's section. " +
		"Useful for understanding how etymologies, pronunciations and " +
		"parts of speech nest within an entry.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"wikitext"},
		"properties": map[string]interface{}{
			"wikitext": map[string]interface{}{
				"type":        "string",
				"description": "Raw wikitext of the entry to analyze",
			},
			"language": map[string]interface{}{
				"type":        "string",
				"description": "Language section to analyze (case-sensitive heading match). Defaults to English.",
			},
		},
	},
}

// InputAnalyzeEntryStructure is the input for the AnalyzeEntryStructure tool.
type InputAnalyzeEntryStructure struct {
	Wikitext string `json:"wikitext"`
	Language string `json:"language"`
}

// HeadingInfo is one classified heading of the entry.
type HeadingInfo struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// OutputAnalyzeEntryStructure is the output for the AnalyzeEntryStructure tool.
type OutputAnalyzeEntryStructure struct {
	// Headings is the entry's full heading tree in document order.
	Headings []HeadingInfo `json:"headings"`
	// LanguageFound reports whether the requested language section exists.
	LanguageFound bool `json:"language_found"`
	// Pattern is the structural pattern of the language section, empty
	// when the section is missing.
	Pattern string `json:"pattern,omitempty"`
	// HomographPattern is the homograph layout of the language section,
	// empty when the section is missing.
	HomographPattern string `json:"homograph_pattern,omitempty"`
	// Templates lists the line-opening template names of the wikitext.
	Templates []string `json:"templates,omitempty"`
}

// AnalyzeEntryStructure splits the wikitext into its heading tree,
// classifies every heading, and derives the structural patterns of the
// requested language section.
func AnalyzeEntryStructure(_ context.Context, _ *mcp.CallToolRequest, input InputAnalyzeEntryStructure) (*mcp.CallToolResult, OutputAnalyzeEntryStructure, error) {
	if input.Wikitext == "" {
		return nil, OutputAnalyzeEntryStructure{}, fmt.Errorf("wikitext is required")
	}
	language := input.Language
	if language == "" {
		language = "English"
	}

	headings, _ := wikitext.SplitByHeadings(input.Wikitext)

	out := OutputAnalyzeEntryStructure{
		Headings:  make([]HeadingInfo, 0, len(headings)),
		Templates: wikitext.ExtractTemplates(input.Wikitext),
	}
	for _, h := range headings {
		out.Headings = append(out.Headings, HeadingInfo{
			Level:    h.Level,
			Text:     h.Text,
			Category: wikitext.Classify(h.Text).Kind.String(),
		})
	}

	start, end, ok := wikitext.FindLanguageSection(headings, language)
	if !ok {
		return nil, out, nil
	}
	out.LanguageFound = true
	out.Pattern = wikitext.ClassifySection(headings, start, end).String()
	out.HomographPattern = wikitext.ClassifyHomographs(headings, start, end).String()

	return nil, out, nil
}
