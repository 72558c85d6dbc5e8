// SPDX-License-Identifier: Apache-2.0

package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// StrictSource is the byte-grammar strategy: a hand-written recursive
// descent over the exact literal layout emitted by the known export
// generator (export-0.11), attribute order and indentation included. It
// trades robustness for precision: the first byte that deviates from the
// expected literal is a hard error carrying offset, line and column.
// Optional elements of the template (redirect, parentid, the deleted or
// anonymous contributor, minor, comment) are handled with single-byte
// lookahead; any other variation fails.
type StrictSource struct {
	r           *byteReader
	initialized bool
	done        bool
}

// NewStrictSource returns a strict source reading from r.
func NewStrictSource(r io.Reader) *StrictSource {
	return &StrictSource{r: newByteReader(r)}
}

// byteReader reads one byte at a time while tracking the absolute offset
// and line/column for diagnostics.
type byteReader struct {
	br   *bufio.Reader
	off  int64
	line int
	col  int
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{br: bufio.NewReader(r), line: 1, col: 1}
}

func (r *byteReader) readByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, err
	}
	r.off++
	if b == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return b, nil
}

// expect consumes exactly the given literal, failing on the first
// mismatching byte.
func (r *byteReader) expect(literal string) error {
	for i := 0; i < len(literal); i++ {
		b, err := r.readByte()
		if err != nil {
			return fmt.Errorf("dump: expected %q: %w", literal, err)
		}
		if b != literal[i] {
			return &ParseError{
				Offset:   r.off,
				Line:     r.line,
				Col:      r.col,
				Expected: strconv.QuoteRune(rune(literal[i])),
				Actual:   strconv.QuoteRune(rune(b)),
			}
		}
	}
	return nil
}

// readUntil consumes bytes up to and including the delimiter and returns
// everything before it.
func (r *byteReader) readUntil(delim byte) (string, error) {
	var buf []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return "", fmt.Errorf("dump: unexpected EOF before %q", delim)
		}
		if b == delim {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

func (r *byteReader) branchError(expected string, got byte) error {
	return &ParseError{
		Offset:   r.off,
		Line:     r.line,
		Col:      r.col,
		Expected: expected,
		Actual:   strconv.QuoteRune(rune(got)),
	}
}

// NextPage parses exactly one page element. The first call consumes the
// dump header and siteinfo. After end of stream it keeps returning
// (nil, nil).
func (s *StrictSource) NextPage() (*Page, error) {
	if s.done {
		return nil, nil
	}
	page, err := s.nextPage()
	if err != nil || page == nil {
		s.done = true
	}
	return page, err
}

func (s *StrictSource) nextPage() (*Page, error) {
	if !s.initialized {
		if err := s.readHeader(); err != nil {
			return nil, err
		}
		s.initialized = true
	}

	// Either two spaces of "  <page>" or the '<' of "</mediawiki>".
	b, err := s.r.readByte()
	if err != nil || b == '<' {
		return nil, nil
	}
	if err := s.r.expect(" <page>\n    <title>"); err != nil {
		return nil, err
	}

	page := &Page{}

	title, err := s.r.readUntil('<')
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(title) {
		return nil, fmt.Errorf("dump: title is not valid UTF-8")
	}
	page.Title = html.UnescapeString(title)

	if err := s.r.expect("/title>\n    <ns>"); err != nil {
		return nil, err
	}
	if page.Namespace, err = s.readInt(); err != nil {
		return nil, fmt.Errorf("dump: namespace of page %q: %w", page.Title, err)
	}
	if err := s.r.expect("/ns>\n    <id>"); err != nil {
		return nil, err
	}
	if page.ID, err = s.readInt(); err != nil {
		return nil, fmt.Errorf("dump: id of page %q: %w", page.Title, err)
	}

	if err := s.r.expect("/id>\n    <re"); err != nil {
		return nil, err
	}
	if b, err = s.r.readByte(); err != nil {
		return nil, err
	}
	switch b {
	case 'd':
		// Optional <redirect title="..." />.
		if err := s.r.expect("irect title=\""); err != nil {
			return nil, err
		}
		if _, err := s.r.readUntil('"'); err != nil {
			return nil, err
		}
		if err := s.r.expect(" />\n    <rev"); err != nil {
			return nil, err
		}
	case 'v':
	default:
		return nil, s.r.branchError("'d' or 'v'", b)
	}

	if err := s.r.expect("ision>\n      <id>"); err != nil {
		return nil, err
	}
	if page.RevisionID, err = s.readInt(); err != nil {
		return nil, fmt.Errorf("dump: revision id of page %q: %w", page.Title, err)
	}
	if err := s.r.expect("/id>\n      <"); err != nil {
		return nil, err
	}

	// Optional <parentid> before the timestamp.
	if b, err = s.r.readByte(); err != nil {
		return nil, err
	}
	switch b {
	case 'p':
		if err := s.r.expect("arentid>"); err != nil {
			return nil, err
		}
		if _, err := s.r.readUntil('<'); err != nil {
			return nil, err
		}
		if err := s.r.expect("/parentid>\n      <timestamp>"); err != nil {
			return nil, err
		}
	case 't':
		if err := s.r.expect("imestamp>"); err != nil {
			return nil, err
		}
	default:
		return nil, s.r.branchError("'p' or 't'", b)
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return nil, err
	}
	if err := s.r.expect("/timestamp>\n      <contributor"); err != nil {
		return nil, err
	}

	if err := s.readContributor(page); err != nil {
		return nil, err
	}

	// Optional <minor /> and <comment>, then origin/model/format.
	if b, err = s.r.readByte(); err != nil {
		return nil, err
	}
	if b != 'm' && b != 'c' && b != 'o' {
		return nil, s.r.branchError("'m', 'c' or 'o'", b)
	}
	if b == 'm' {
		if err := s.r.expect("inor />\n      <"); err != nil {
			return nil, err
		}
		if b, err = s.r.readByte(); err != nil {
			return nil, err
		}
	}
	if b == 'c' {
		if err := s.readComment(); err != nil {
			return nil, err
		}
		if b, err = s.r.readByte(); err != nil {
			return nil, err
		}
	}
	if b != 'o' {
		return nil, s.r.branchError("'o'", b)
	}
	if err := s.r.expect("rigin>"); err != nil {
		return nil, err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return nil, err
	}
	if err := s.r.expect("/origin>\n      <model>"); err != nil {
		return nil, err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return nil, err
	}
	if err := s.r.expect("/model>\n      <format>"); err != nil {
		return nil, err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return nil, err
	}

	if err := s.readText(page); err != nil {
		return nil, err
	}

	if _, err := s.r.readUntil('<'); err != nil { // sha1 body
		return nil, err
	}
	if err := s.r.expect("/sha1>\n    </revision>\n  </page>\n"); err != nil {
		return nil, err
	}
	return page, nil
}

// readContributor handles the three contributor variants: deleted,
// username+id, and anonymous IP.
func (s *StrictSource) readContributor(page *Page) error {
	b, err := s.r.readByte()
	if err != nil {
		return err
	}
	if b == ' ' {
		return s.r.expect("deleted=\"deleted\" />\n      <")
	}
	if b != '>' {
		return s.r.branchError("' ' or '>'", b)
	}
	if err := s.r.expect("\n        <"); err != nil {
		return err
	}
	if b, err = s.r.readByte(); err != nil {
		return err
	}
	switch b {
	case 'u':
		if err := s.r.expect("sername>"); err != nil {
			return err
		}
		if _, err := s.r.readUntil('<'); err != nil {
			return err
		}
		if err := s.r.expect("/username>\n        <id>"); err != nil {
			return err
		}
		if page.ContributorID, err = s.readInt(); err != nil {
			return fmt.Errorf("dump: contributor id of page %q: %w", page.Title, err)
		}
		return s.r.expect("/id>\n      </contributor>\n      <")
	case 'i':
		if err := s.r.expect("p>"); err != nil {
			return err
		}
		if _, err := s.r.readUntil('<'); err != nil {
			return err
		}
		return s.r.expect("/ip>\n      </contributor>\n      <")
	}
	return s.r.branchError("'u' or 'i'", b)
}

// readComment handles <comment>...</comment> and the redacted
// <comment deleted="deleted" /> variant. The leading "c" has already
// been consumed.
func (s *StrictSource) readComment() error {
	if err := s.r.expect("omment"); err != nil {
		return err
	}
	b, err := s.r.readByte()
	if err != nil {
		return err
	}
	switch b {
	case '>':
		if _, err := s.r.readUntil('<'); err != nil {
			return err
		}
		return s.r.expect("/comment>\n      <")
	case ' ':
		return s.r.expect("deleted=\"deleted\" />\n      <")
	}
	return s.r.branchError("'>' or ' '", b)
}

// readText parses the <text bytes="..." sha1="..."> element, which is
// either self-closed (empty body) or carries xml:space="preserve" and a
// body running to the literal </text>.
func (s *StrictSource) readText(page *Page) error {
	if err := s.r.expect("/format>\n      <text bytes=\""); err != nil {
		return err
	}
	if _, err := s.r.readUntil('"'); err != nil {
		return err
	}
	if err := s.r.expect(" sha1=\""); err != nil {
		return err
	}
	if _, err := s.r.readUntil('"'); err != nil {
		return err
	}
	if err := s.r.expect(" "); err != nil {
		return err
	}
	b, err := s.r.readByte()
	if err != nil {
		return err
	}
	switch b {
	case '/':
		return s.r.expect(">\n      <sha1>")
	case 'x':
		if err := s.r.expect("ml:space=\"preserve\">"); err != nil {
			return err
		}
		body, err := s.r.readUntil('<')
		if err != nil {
			return err
		}
		if !utf8.ValidString(body) {
			return fmt.Errorf("dump: text of page %q is not valid UTF-8", page.Title)
		}
		page.Text = html.UnescapeString(body)
		return s.r.expect("/text>\n      <sha1>")
	}
	return s.r.branchError("'/' or 'x'", b)
}

// readInt consumes an integer element body, up to but not including the
// next '<', pushing that '<' handling onto the caller's next expect.
func (s *StrictSource) readInt() (*int, error) {
	body, err := s.r.readUntil('<')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(body)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// readHeader consumes the <mediawiki> root element literal and the whole
// siteinfo block, namespace declarations included.
func (s *StrictSource) readHeader() error {
	err := s.r.expect(`<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` +
		` xsi:schemaLocation="http://www.mediawiki.org/xml/export-0.11/` +
		` http://www.mediawiki.org/xml/export-0.11.xsd" version="0.11" xml:lang="`)
	if err != nil {
		return err
	}
	if _, err := s.r.readUntil('"'); err != nil { // language code
		return err
	}
	if err := s.r.expect(">\n  <siteinfo>\n    <sitename>"); err != nil {
		return err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return err
	}
	if err := s.r.expect("/sitename>\n    <dbname>"); err != nil {
		return err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return err
	}
	if err := s.r.expect("/dbname>\n    <base>"); err != nil {
		return err
	}
	if _, err := s.r.readUntil('<'); err != nil {
		return err
	}
	if err := s.r.expect("/base>\n    <generator>MediaWiki "); err != nil {
		return err
	}
	if _, err := s.r.readUntil('<'); err != nil { // generator version
		return err
	}
	if err := s.r.expect("/generator>\n    <case>case-sensitive</case>\n    <namespaces>\n"); err != nil {
		return err
	}

	for {
		if err := s.r.expect("    "); err != nil {
			return err
		}
		b, err := s.r.readByte()
		if err != nil {
			return err
		}
		if b == '<' {
			// "    </namespaces>" closes the block.
			if err := s.r.expect("/namespaces>\n"); err != nil {
				return err
			}
			break
		}
		if err := s.r.expect(" <namespace key=\""); err != nil {
			return err
		}
		if _, err := s.r.readUntil('"'); err != nil {
			return err
		}
		if err := s.r.expect(" case=\""); err != nil {
			return err
		}
		if _, err := s.r.readUntil('"'); err != nil {
			return err
		}
		if b, err = s.r.readByte(); err != nil {
			return err
		}
		switch b {
		case '>':
			// Named namespace: <namespace key="1" ...>Talk</namespace>.
			if _, err := s.r.readUntil('<'); err != nil {
				return err
			}
			if err := s.r.expect("/namespace>\n"); err != nil {
				return err
			}
		case ' ':
			// The default namespace 0 has no name and self-closes.
			if err := s.r.expect("/>\n"); err != nil {
				return err
			}
		default:
			return s.r.branchError("'>' or ' '", b)
		}
	}

	return s.r.expect("  </siteinfo>\n")
}
