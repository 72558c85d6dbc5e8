// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// XMLSource is the event-driven strategy, built on the pull tokenizer of
// encoding/xml. It keeps a small explicit state instead of a document
// tree: the page under construction, the key of the namespace declaration
// currently open, and one text accumulator for whatever leaf element is
// open. Ids are unlabeled in the export grammar, so the first unclaimed
// <id> in page scope becomes the page id, the second the revision id and
// the third the contributor id; the counter resets at every <page>.
type XMLSource struct {
	dec *xml.Decoder

	page    *Page
	idCount int

	text      strings.Builder
	capturing bool

	nsKey      *int
	namespaces map[int]string

	done bool
}

// NewXMLSource returns an event-driven source reading from r.
func NewXMLSource(r io.Reader) *XMLSource {
	return &XMLSource{
		dec:        xml.NewDecoder(r),
		namespaces: make(map[int]string),
	}
}

// Namespaces returns the siteinfo namespace declarations seen so far,
// keyed by numeric namespace. The default namespace 0 has an empty name.
func (s *XMLSource) Namespaces() map[int]string {
	return s.namespaces
}

// NextPage advances the tokenizer until a </page> completes a record.
// A tokenizer error, malformed markup included, terminates the stream:
// callers observe it as a normal end of stream, not as a hard error.
func (s *XMLSource) NextPage() (*Page, error) {
	if s.done {
		return nil, nil
	}
	for {
		tok, err := s.dec.Token()
		if err != nil {
			s.done = true
			return nil, nil
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := s.startElement(t); err != nil {
				s.done = true
				return nil, err
			}
		case xml.CharData:
			if s.capturing {
				s.text.Write(t)
			}
		case xml.EndElement:
			page, err := s.endElement(t)
			if err != nil {
				s.done = true
				return nil, err
			}
			if page != nil {
				return page, nil
			}
		}
	}
}

func (s *XMLSource) startElement(t xml.StartElement) error {
	switch t.Name.Local {
	case "page":
		s.page = &Page{}
		s.idCount = 0
	case "namespace":
		s.nsKey = nil
		for _, attr := range t.Attr {
			if attr.Name.Local != "key" {
				continue
			}
			key, err := strconv.Atoi(attr.Value)
			if err != nil {
				return fmt.Errorf("dump: namespace key %q: %w", attr.Value, err)
			}
			s.nsKey = &key
		}
		s.beginCapture()
	case "title", "ns", "id", "text":
		s.beginCapture()
	}
	return nil
}

func (s *XMLSource) endElement(t xml.EndElement) (*Page, error) {
	defer s.endCapture()

	switch t.Name.Local {
	case "namespace":
		if s.nsKey != nil {
			s.namespaces[*s.nsKey] = s.text.String()
		}
	case "page":
		page := s.page
		s.page = nil
		return page, nil
	}

	if s.page == nil {
		return nil, nil
	}

	switch t.Name.Local {
	case "title":
		s.page.Title = s.text.String()
	case "ns":
		ns, err := strconv.Atoi(s.text.String())
		if err != nil {
			return nil, fmt.Errorf("dump: namespace of page %q: %w", s.page.Title, err)
		}
		s.page.Namespace = &ns
	case "id":
		id, err := strconv.Atoi(s.text.String())
		if err != nil {
			return nil, fmt.Errorf("dump: id of page %q: %w", s.page.Title, err)
		}
		s.commitID(id)
	case "text":
		s.page.Text = s.text.String()
	}
	return nil, nil
}

func (s *XMLSource) beginCapture() {
	s.text.Reset()
	s.capturing = true
}

func (s *XMLSource) endCapture() {
	s.text.Reset()
	s.capturing = false
}

func (s *XMLSource) commitID(id int) {
	s.idCount++
	switch s.idCount {
	case 1:
		s.page.ID = &id
	case 2:
		s.page.RevisionID = &id
	case 3:
		s.page.ContributorID = &id
	}
}
