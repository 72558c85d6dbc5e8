// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// lineState is the phase of the line recognizer within one page element.
type lineState int

const (
	// statePrePage waits for a <page> tag.
	statePrePage lineState = iota

	// stateInPage is inside <page>, still collecting title, ns and id.
	stateInPage

	// stateInPageAfterTitleAndID has the page header and waits for a
	// <revision> or the closing </page>.
	stateInPageAfterTitleAndID

	// stateInRevision is inside <revision>, before the text body.
	stateInRevision

	// stateInRevisionText accumulates the multi-line text body verbatim
	// until the literal </text> is seen.
	stateInRevisionText
)

// LineSource is the line-state-machine strategy. The export format is
// line-oriented in practice, so a restricted recognizer over literal tag
// substrings is far cheaper than a general XML parser and tolerates minor
// dialect differences. Structure it does not recognize is skipped; the
// stream simply ends at EOF, so malformed dumps degrade to fewer pages
// rather than a hard error.
type LineSource struct {
	sc      *bufio.Scanner
	state   lineState
	page    *Page
	idCount int
	text    strings.Builder
	done    bool
}

// NewLineSource returns a line-oriented source reading from r.
func NewLineSource(r io.Reader) *LineSource {
	sc := bufio.NewScanner(r)
	// Wikitext lines can be very long (translation tables, quotations).
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &LineSource{sc: sc}
}

// NextPage consumes lines until a </page> completes a record. It keeps
// returning (nil, nil) once the underlying stream is exhausted.
func (s *LineSource) NextPage() (*Page, error) {
	if s.done {
		return nil, nil
	}
	for s.sc.Scan() {
		page, err := s.consumeLine(s.sc.Text())
		if err != nil {
			s.done = true
			return nil, err
		}
		if page != nil {
			return page, nil
		}
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return nil, fmt.Errorf("dump: read line: %w", err)
	}
	return nil, nil
}

func (s *LineSource) consumeLine(line string) (*Page, error) {
	switch s.state {
	case statePrePage:
		if strings.Contains(line, "<page>") {
			s.state = stateInPage
			s.page = &Page{}
			s.idCount = 0
		}

	case stateInPage:
		if body, ok := tagBody(line, "title"); ok {
			if !utf8.ValidString(body) {
				return nil, fmt.Errorf("dump: title is not valid UTF-8")
			}
			s.page.Title = html.UnescapeString(body)
		}
		if body, ok := tagBody(line, "ns"); ok {
			ns, err := strconv.Atoi(body)
			if err != nil {
				return nil, fmt.Errorf("dump: namespace of page %q: %w", s.page.Title, err)
			}
			s.page.Namespace = &ns
		}
		if err := s.consumeID(line); err != nil {
			return nil, err
		}
		if s.page.Title != "" && s.page.ID != nil {
			s.state = stateInPageAfterTitleAndID
		}

	case stateInPageAfterTitleAndID:
		if strings.Contains(line, "<revision>") {
			s.state = stateInRevision
		} else if strings.Contains(line, "</page>") {
			page := s.page
			s.page = nil
			s.state = statePrePage
			return page, nil
		}

	case stateInRevision:
		if err := s.consumeID(line); err != nil {
			return nil, err
		}
		if strings.Contains(line, "<text") {
			// Attribute text on the opening line is skipped: the body
			// starts after the first '>'. A self-closed <text ... />
			// carries no body at all.
			i := strings.IndexByte(line, '>')
			if i >= 0 && strings.HasSuffix(line[:i], "/") {
				s.page.Text = ""
				return nil, nil
			}
			s.state = stateInRevisionText
			s.text.Reset()
			if i >= 0 {
				if err := s.consumeTextLine(line[i+1:]); err != nil {
					return nil, err
				}
			}
		} else if strings.Contains(line, "</revision>") {
			s.state = stateInPageAfterTitleAndID
		}

	case stateInRevisionText:
		if err := s.consumeTextLine(line); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// consumeTextLine appends one line of the text body. On the closing line
// the accumulated body still ends with the literal </text>; those seven
// characters are trimmed off before the body is committed.
func (s *LineSource) consumeTextLine(line string) error {
	s.text.WriteString(line)
	if !strings.Contains(line, "</text>") {
		s.text.WriteByte('\n')
		return nil
	}
	body := s.text.String()
	body = body[:len(body)-len("</text>")]
	if !utf8.ValidString(body) {
		return fmt.Errorf("dump: text of page %q is not valid UTF-8", s.page.Title)
	}
	s.page.Text = html.UnescapeString(body)
	s.text.Reset()
	s.state = stateInPageAfterTitleAndID
	return nil
}

func (s *LineSource) consumeID(line string) error {
	body, ok := tagBody(line, "id")
	if !ok {
		return nil
	}
	id, err := strconv.Atoi(body)
	if err != nil {
		return fmt.Errorf("dump: id of page %q: %w", s.page.Title, err)
	}
	s.idCount++
	switch s.idCount {
	case 1:
		s.page.ID = &id
	case 2:
		s.page.RevisionID = &id
	case 3:
		s.page.ContributorID = &id
	}
	return nil
}

// tagBody extracts the text between <tag> and </tag> when both literals
// appear on the same line.
func tagBody(line, tag string) (string, bool) {
	open := "<" + tag + ">"
	i := strings.Index(line, open)
	if i < 0 {
		return "", false
	}
	rest := line[i+len(open):]
	j := strings.Index(rest, "</"+tag+">")
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
