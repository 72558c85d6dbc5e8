// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"fmt"
	"io"
)

// Source yields the pages of a dump in document order.
//
// NextPage returns (nil, nil) exactly at end of stream; calling it again
// after that deterministically keeps returning (nil, nil). Sources perform
// only the reads needed for one page per call and hold O(1) state between
// calls. Namespace filtering is the caller's responsibility: a source
// yields every page in the dump.
type Source interface {
	NextPage() (*Page, error)
}

// Strategy selects a Source implementation at construction time.
type Strategy string

const (
	// StrategyXML uses the generic pull XML tokenizer. Tokenizer errors
	// silently end the stream rather than surfacing as parse errors.
	StrategyXML Strategy = "xml"

	// StrategyLines recognizes the export format line by line with plain
	// substring matching. Unrecognized structure degrades to end of
	// stream; it never fails on dump shape.
	StrategyLines Strategy = "lines"

	// StrategyStrict asserts the exact byte layout of the known export
	// generator and fails loudly, with positional diagnostics, on the
	// first deviating byte.
	StrategyStrict Strategy = "strict"
)

// NewSource builds the Source implementing the given strategy over r.
// An empty strategy defaults to StrategyXML.
func NewSource(strategy Strategy, r io.Reader) (Source, error) {
	switch strategy {
	case StrategyXML, "":
		return NewXMLSource(r), nil
	case StrategyLines:
		return NewLineSource(r), nil
	case StrategyStrict:
		return NewStrictSource(r), nil
	}
	return nil, fmt.Errorf("unknown reader strategy %q (want %q, %q or %q)",
		strategy, StrategyXML, StrategyLines, StrategyStrict)
}

// ParseError reports the first byte of input that deviates from the
// expected dump layout, with its absolute offset and line/column position.
type ParseError struct {
	Offset   int64
	Line     int
	Col      int
	Expected string
	Actual   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dump: mismatch at byte %d (line %d, col %d): expected %s, got %s",
		e.Offset, e.Line, e.Col, e.Expected, e.Actual)
}
