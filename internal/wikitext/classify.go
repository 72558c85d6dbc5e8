// SPDX-License-Identifier: Apache-2.0

package wikitext

import (
	"strings"
	"unicode"
)

// CategoryKind is the semantic category of a heading.
type CategoryKind int

const (
	Other CategoryKind = iota
	Etymology
	Pronunciation
	PartOfSpeech
)

func (k CategoryKind) String() string {
	switch k {
	case Etymology:
		return "Etymology"
	case Pronunciation:
		return "Pronunciation"
	case PartOfSpeech:
		return "PartOfSpeech"
	}
	return "Other"
}

// Category is the classification of one heading. Term carries the matched
// part-of-speech word for PartOfSpeech and the original heading text for
// Other; it is empty otherwise.
type Category struct {
	Kind CategoryKind
	Term string
}

// partsOfSpeech is the fixed part-of-speech vocabulary, in priority order.
// Matching is by whole alphabetic token so that "Proper noun" matches
// "noun" while "Pronounced forms" does not.
var partsOfSpeech = []string{
	"noun", "verb", "adjective", "adverb", "preposition", "conjunction",
	"interjection", "determiner", "pronoun", "article", "numeral", "particle",
}

// Classify maps heading text to its category. Rules apply in priority
// order: etymology beats pronunciation beats part of speech, regardless of
// where the keywords appear in the text. Matching is case-insensitive and
// containment-based, so numeric variants like "Etymology 2" classify the
// same as "Etymology".
func Classify(text string) Category {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "etymology") {
		return Category{Kind: Etymology}
	}
	if strings.Contains(lower, "pronunciation") {
		return Category{Kind: Pronunciation}
	}
	tokens := alphaTokens(lower)
	for _, pos := range partsOfSpeech {
		if tokens[pos] {
			return Category{Kind: PartOfSpeech, Term: pos}
		}
	}
	return Category{Kind: Other, Term: text}
}

// alphaTokens splits lower-cased text into its maximal runs of ASCII
// letters.
func alphaTokens(lower string) map[string]bool {
	tokens := make(map[string]bool)
	start := -1
	for i := 0; i <= len(lower); i++ {
		letter := i < len(lower) && lower[i] >= 'a' && lower[i] <= 'z'
		if letter && start < 0 {
			start = i
		}
		if !letter && start >= 0 {
			tokens[lower[start:i]] = true
			start = -1
		}
	}
	return tokens
}

// NormalizeHeading strips everything but letters from heading text,
// collapsing interior runs of other characters to a single space, so that
// "Etymology 1" and "Etymology 2" group under "Etymology". Useful for
// frequency reports; classification itself does not need it.
func NormalizeHeading(text string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range text {
		if !unicode.IsLetter(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
