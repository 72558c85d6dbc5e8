// SPDX-License-Identifier: Apache-2.0

package wikitext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiktersproj/wikters/internal/wikitext"
)

func h(level int, text string) wikitext.Heading {
	return wikitext.Heading{Level: level, Text: text}
}

func TestClassifySection(t *testing.T) {
	tests := []struct {
		name     string
		headings []wikitext.Heading
		want     string
	}{
		{
			name:     "no l3",
			headings: []wikitext.Heading{h(2, "English")},
			want:     "Other(no_l3)",
		},
		{
			name: "nothing recognized at l3",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Alternative forms"),
			},
			want: "Other(no_etymology_pronunciation_pos)",
		},
		{
			name: "pos only",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Noun"),
			},
			want: "PartOfSpeechOnly",
		},
		{
			name: "etymology only",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Etymology"),
			},
			want: "EtymologyOnly",
		},
		{
			name: "etymology with nested pos",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Etymology 1"),
				h(4, "Noun"),
				h(3, "Etymology 2"),
				h(4, "Verb"),
			},
			want: "EtymologyWithNestedPartOfSpeech",
		},
		{
			name: "pronunciation only",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Pronunciation"),
			},
			want: "PronunciationOnly",
		},
		{
			name: "pronunciation with nested etymology",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Pronunciation"),
				h(4, "Etymology 1"),
				h(4, "Etymology 2"),
			},
			want: "PronunciationWithNestedEtymology",
		},
		{
			name: "etymology then flat pronunciation",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Etymology"),
				h(3, "Pronunciation"),
			},
			want: "EtymologyThenFlatPronunciation",
		},
		{
			name: "etymology then nested pronunciation",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Etymology"),
				h(4, "Pronunciation"),
				h(3, "Pronunciation"),
			},
			want: "EtymologyThenNestedPronunciation",
		},
		{
			name: "pronunciation then flat etymology",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Pronunciation"),
				h(3, "Etymology"),
			},
			want: "PronunciationThenFlatEtymology",
		},
		{
			name: "pronunciation then nested etymology",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Pronunciation"),
				h(4, "Etymology 1"),
				h(3, "Etymology 2"),
			},
			want: "PronunciationThenNestedEtymology",
		},
		{
			name: "grandchildren are not nested children",
			headings: []wikitext.Heading{
				h(2, "English"),
				h(3, "Etymology"),
				h(4, "Noun"),
				h(5, "Pronunciation"),
				h(3, "Pronunciation"),
			},
			want: "EtymologyThenFlatPronunciation",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := wikitext.ClassifySection(tc.headings, 0, len(tc.headings))
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestClassifySectionRespectsSectionBounds(t *testing.T) {
	// The French section's pronunciation must not leak into the nested
	// check of the English etymology.
	headings := []wikitext.Heading{
		h(2, "English"),
		h(3, "Etymology"),
		h(2, "French"),
		h(3, "Pronunciation"),
	}

	got := wikitext.ClassifySection(headings, 0, 2)
	assert.Equal(t, "EtymologyOnly", got.String())
}
