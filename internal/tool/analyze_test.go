// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEntryStructure(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	entry := "{{also|Word}}\n" +
		"==English==\n" +
		"===Etymology 1===\n" +
		"From somewhere.\n" +
		"====Noun====\n" +
		"{{en-noun}}\n" +
		"===Etymology 2===\n" +
		"====Verb====\n" +
		"{{en-verb}}\n" +
		"==French==\n" +
		"===Pronunciation===\n"

	tests := []struct {
		name           string
		input          InputAnalyzeEntryStructure
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputAnalyzeEntryStructure)
	}{
		{
			name:        "empty wikitext returns error",
			input:       InputAnalyzeEntryStructure{Wikitext: ""},
			wantErr:     true,
			errContains: "wikitext is required",
		},
		{
			name:  "language defaults to English",
			input: InputAnalyzeEntryStructure{Wikitext: entry},
			validateOutput: func(t *testing.T, output OutputAnalyzeEntryStructure) {
				require.True(t, output.LanguageFound)
				assert.Equal(t, "EtymologyWithNestedPartOfSpeech", output.Pattern)
				assert.Equal(t, "MultipleEtymologiesWithNestedPos", output.HomographPattern)

				require.Len(t, output.Headings, 7)
				assert.Equal(t, HeadingInfo{Level: 2, Text: "English", Category: "Other"}, output.Headings[0])
				assert.Equal(t, HeadingInfo{Level: 3, Text: "Etymology 1", Category: "Etymology"}, output.Headings[1])
				assert.Equal(t, HeadingInfo{Level: 4, Text: "Noun", Category: "PartOfSpeech"}, output.Headings[2])

				assert.Equal(t, []string{"also", "en-noun", "en-verb"}, output.Templates)
			},
		},
		{
			name:  "explicit language section",
			input: InputAnalyzeEntryStructure{Wikitext: entry, Language: "French"},
			validateOutput: func(t *testing.T, output OutputAnalyzeEntryStructure) {
				require.True(t, output.LanguageFound)
				assert.Equal(t, "PronunciationOnly", output.Pattern)
			},
		},
		{
			name:  "missing language section",
			input: InputAnalyzeEntryStructure{Wikitext: entry, Language: "German"},
			validateOutput: func(t *testing.T, output OutputAnalyzeEntryStructure) {
				assert.False(t, output.LanguageFound)
				assert.Empty(t, output.Pattern)
				assert.Empty(t, output.HomographPattern)
				assert.NotEmpty(t, output.Headings, "the heading tree is reported regardless")
			},
		},
		{
			name:  "wikitext without headings",
			input: InputAnalyzeEntryStructure{Wikitext: "just a definition line"},
			validateOutput: func(t *testing.T, output OutputAnalyzeEntryStructure) {
				assert.False(t, output.LanguageFound)
				assert.Empty(t, output.Headings)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := AnalyzeEntryStructure(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}
