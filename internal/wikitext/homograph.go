// SPDX-License-Identifier: Apache-2.0

package wikitext

import "fmt"

// HomographKind tags how multiple senses sharing a spelling are laid out
// within one language section.
type HomographKind int

const (
	HomographOther HomographKind = iota

	// HomographMultipleEtymologiesWithNestedPos: several level-3
	// etymologies, each carrying its part-of-speech headings one level
	// down. The dominant homograph layout.
	HomographMultipleEtymologiesWithNestedPos

	// HomographFlatPos: part-of-speech headings directly at level 3 with
	// no etymology at all.
	HomographFlatPos

	// HomographSingleEtymologyWithFlatPos: one etymology and flat level-3
	// part-of-speech headings beside it.
	HomographSingleEtymologyWithFlatPos

	// HomographPronunciationDivides: a level-3 pronunciation divides the
	// homographs, with etymologies nested below it.
	HomographPronunciationDivides
)

var homographNames = map[HomographKind]string{
	HomographMultipleEtymologiesWithNestedPos: "MultipleEtymologiesWithNestedPos",
	HomographFlatPos:                          "FlatPos",
	HomographSingleEtymologyWithFlatPos:       "SingleEtymologyWithFlatPos",
	HomographPronunciationDivides:             "PronunciationDividesHomographs",
}

// HomographPattern is the homograph layout of one language section.
type HomographPattern struct {
	Kind   HomographKind
	Detail string
}

func (p HomographPattern) String() string {
	if p.Kind == HomographOther {
		return "Other(" + p.Detail + ")"
	}
	return homographNames[p.Kind]
}

// ClassifyHomographs decides the homograph layout of headings[start:end],
// one language section. The section's own level-2 heading at start is not
// inspected. Total, like ClassifySection: unrecognized layouts map to
// HomographOther with a detail key.
func ClassifyHomographs(headings []Heading, start, end int) HomographPattern {
	if start+1 >= end {
		return HomographPattern{Kind: HomographOther, Detail: "no_headings"}
	}

	etymologies := 0
	pronunciationDividers := 0
	hasL3Pos := false
	hasL4PosUnderEtymology := false

	for i := start + 1; i < end && i < len(headings); i++ {
		if headings[i].Level != 3 {
			continue
		}
		switch Classify(headings[i].Text).Kind {
		case Etymology:
			etymologies++
			// Nested part of speech means the etymology's senses live one
			// level down, the classic homograph split.
			if i+1 < end && headings[i+1].Level == 4 &&
				Classify(headings[i+1].Text).Kind == PartOfSpeech {
				hasL4PosUnderEtymology = true
			}
		case Pronunciation:
			pronunciationDividers++
		case PartOfSpeech:
			hasL3Pos = true
		}
	}

	switch {
	case pronunciationDividers > 0:
		return HomographPattern{Kind: HomographPronunciationDivides}
	case etymologies >= 2 && hasL4PosUnderEtymology:
		return HomographPattern{Kind: HomographMultipleEtymologiesWithNestedPos}
	case etymologies == 0 && hasL3Pos:
		return HomographPattern{Kind: HomographFlatPos}
	case etymologies >= 1 && hasL3Pos && !hasL4PosUnderEtymology:
		return HomographPattern{Kind: HomographSingleEtymologyWithFlatPos}
	}
	return HomographPattern{
		Kind:   HomographOther,
		Detail: fmt.Sprintf("etym:%d has_l4pos:%t has_l3pos:%t", etymologies, hasL4PosUnderEtymology, hasL3Pos),
	}
}
