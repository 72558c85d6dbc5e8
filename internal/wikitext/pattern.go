// SPDX-License-Identifier: Apache-2.0

package wikitext

// PatternKind tags the structural relationship between etymology,
// pronunciation and part-of-speech headings within one language section.
type PatternKind int

const (
	// PatternOther covers every shape the decision procedure does not
	// recognize; Pattern.Detail carries a key distinguishing the causes.
	PatternOther PatternKind = iota

	PatternEtymologyThenNestedPronunciation
	PatternEtymologyThenFlatPronunciation
	PatternPronunciationThenNestedEtymology
	PatternPronunciationThenFlatEtymology
	PatternEtymologyWithNestedPartOfSpeech
	PatternEtymologyOnly
	PatternPronunciationWithNestedEtymology
	PatternPronunciationOnly
	PatternPartOfSpeechOnly
)

var patternNames = map[PatternKind]string{
	PatternEtymologyThenNestedPronunciation: "EtymologyThenNestedPronunciation",
	PatternEtymologyThenFlatPronunciation:   "EtymologyThenFlatPronunciation",
	PatternPronunciationThenNestedEtymology: "PronunciationThenNestedEtymology",
	PatternPronunciationThenFlatEtymology:   "PronunciationThenFlatEtymology",
	PatternEtymologyWithNestedPartOfSpeech:  "EtymologyWithNestedPartOfSpeech",
	PatternEtymologyOnly:                    "EtymologyOnly",
	PatternPronunciationWithNestedEtymology: "PronunciationWithNestedEtymology",
	PatternPronunciationOnly:                "PronunciationOnly",
	PatternPartOfSpeechOnly:                 "PartOfSpeechOnly",
}

// Pattern is the structural pattern of one language section.
type Pattern struct {
	Kind   PatternKind
	Detail string
}

func (p Pattern) String() string {
	if p.Kind == PatternOther {
		return "Other(" + p.Detail + ")"
	}
	return patternNames[p.Kind]
}

func other(detail string) Pattern {
	return Pattern{Kind: PatternOther, Detail: detail}
}

// ClassifySection decides the structural pattern of headings[start:end],
// one language section. It is total: shapes outside the recognized set map
// to PatternOther with a descriptive detail key, never an error.
//
// The decision walks the level-3 headings of the section. When both an
// etymology and a pronunciation exist at level 3 their order decides the
// base pattern, and the leading one is further inspected for a level-4
// child of the other category (nested versus flat). With only one of the
// two present, the nested check looks for the section shape it signals:
// a part-of-speech child under a lone etymology (homographs sharing one
// etymology), an etymology child under a lone pronunciation (one shared
// pronunciation, several etymologies).
func ClassifySection(headings []Heading, start, end int) Pattern {
	l3 := L3Headings(headings, start, end)
	if len(l3) == 0 {
		return other("no_l3")
	}

	firstEtym, firstPron, firstPos := -1, -1, -1
	for _, idx := range l3 {
		switch Classify(headings[idx].Text).Kind {
		case Etymology:
			if firstEtym < 0 {
				firstEtym = idx
			}
		case Pronunciation:
			if firstPron < 0 {
				firstPron = idx
			}
		case PartOfSpeech:
			if firstPos < 0 {
				firstPos = idx
			}
		}
	}

	switch {
	case firstEtym >= 0 && firstPron >= 0:
		if firstEtym < firstPron {
			if hasNestedChild(headings, firstEtym, end, Pronunciation) {
				return Pattern{Kind: PatternEtymologyThenNestedPronunciation}
			}
			return Pattern{Kind: PatternEtymologyThenFlatPronunciation}
		}
		if hasNestedChild(headings, firstPron, end, Etymology) {
			return Pattern{Kind: PatternPronunciationThenNestedEtymology}
		}
		return Pattern{Kind: PatternPronunciationThenFlatEtymology}

	case firstEtym >= 0:
		if hasNestedChild(headings, firstEtym, end, PartOfSpeech) {
			return Pattern{Kind: PatternEtymologyWithNestedPartOfSpeech}
		}
		return Pattern{Kind: PatternEtymologyOnly}

	case firstPron >= 0:
		if hasNestedChild(headings, firstPron, end, Etymology) {
			return Pattern{Kind: PatternPronunciationWithNestedEtymology}
		}
		return Pattern{Kind: PatternPronunciationOnly}

	case firstPos >= 0:
		return Pattern{Kind: PatternPartOfSpeechOnly}
	}
	return other("no_etymology_pronunciation_pos")
}

// hasNestedChild reports whether the heading at parent has a child exactly
// one level deeper that classifies into kind. The walk covers the parent's
// whole span: it stops at the first heading at the parent's level or
// shallower (or at end). Headings deeper than parent.Level+1 belong to a
// grandchild's span and are skipped, not matched.
func hasNestedChild(headings []Heading, parent, end int, kind CategoryKind) bool {
	level := headings[parent].Level
	for i := parent + 1; i < end && i < len(headings); i++ {
		if headings[i].Level <= level {
			break
		}
		if headings[i].Level == level+1 && Classify(headings[i].Text).Kind == kind {
			return true
		}
	}
	return false
}
