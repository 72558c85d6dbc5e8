// SPDX-License-Identifier: Apache-2.0

package dump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiktersproj/wikters/internal/dump"
)

// sampleDump follows the byte-exact layout of the export-0.11 generator,
// which is what the strict strategy asserts. The first page is a plain
// main-namespace entry; the second exercises the optional elements:
// redirect, deleted contributor, minor flag, redacted comment and a
// self-closed empty text body.
const sampleDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.mediawiki.org/xml/export-0.11/ http://www.mediawiki.org/xml/export-0.11.xsd" version="0.11" xml:lang="en">
  <siteinfo>
    <sitename>Wiktionary</sitename>
    <dbname>enwiktionary</dbname>
    <base>https://en.wiktionary.org/wiki/Wiktionary:Main_Page</base>
    <generator>MediaWiki 1.43.0-wmf.2</generator>
    <case>case-sensitive</case>
    <namespaces>
      <namespace key="0" case="case-sensitive" />
      <namespace key="1" case="case-sensitive">Talk</namespace>
    </namespaces>
  </siteinfo>
  <page>
    <title>dictionary</title>
    <ns>0</ns>
    <id>16</id>
    <revision>
      <id>7891</id>
      <parentid>7890</parentid>
      <timestamp>2024-01-01T00:00:00Z</timestamp>
      <contributor>
        <username>Lexicographer</username>
        <id>99</id>
      </contributor>
      <comment>structure pass</comment>
      <origin>7891</origin>
      <model>wikitext</model>
      <format>text/x-wiki</format>
      <text bytes="60" sha1="phoiac9h4m842xq45sp7s6u21eteeq1" xml:space="preserve">==English==
===Etymology===
Borrowed A&amp;B.</text>
      <sha1>phoiac9h4m842xq45sp7s6u21eteeq1</sha1>
    </revision>
  </page>
  <page>
    <title>Talk:dictionary</title>
    <ns>1</ns>
    <id>17</id>
    <redirect title="dictionary" />
    <revision>
      <id>8001</id>
      <timestamp>2024-01-02T00:00:00Z</timestamp>
      <contributor deleted="deleted" />
      <minor />
      <comment deleted="deleted" />
      <origin>8001</origin>
      <model>wikitext</model>
      <format>text/x-wiki</format>
      <text bytes="0" sha1="phoiac9h4m842xq45sp7s6u21eteeq1" />
      <sha1>phoiac9h4m842xq45sp7s6u21eteeq1</sha1>
    </revision>
  </page>
</mediawiki>
`

var allStrategies = []dump.Strategy{dump.StrategyXML, dump.StrategyLines, dump.StrategyStrict}

func drain(t *testing.T, src dump.Source) []*dump.Page {
	t.Helper()
	var pages []*dump.Page
	for {
		page, err := src.NextPage()
		require.NoError(t, err)
		if page == nil {
			return pages
		}
		pages = append(pages, page)
	}
}

func TestRoundTripAcrossStrategies(t *testing.T) {
	for _, strategy := range allStrategies {
		t.Run(string(strategy), func(t *testing.T) {
			src, err := dump.NewSource(strategy, strings.NewReader(sampleDump))
			require.NoError(t, err)

			pages := drain(t, src)
			require.Len(t, pages, 2)

			first := pages[0]
			assert.Equal(t, "dictionary", first.Title)
			require.NotNil(t, first.Namespace)
			assert.Equal(t, 0, *first.Namespace)
			require.NotNil(t, first.ID)
			assert.Equal(t, 16, *first.ID)
			require.NotNil(t, first.RevisionID)
			assert.Equal(t, 7891, *first.RevisionID)
			require.NotNil(t, first.ContributorID)
			assert.Equal(t, 99, *first.ContributorID)
			assert.Equal(t, "==English==\n===Etymology===\nBorrowed A&B.", first.Text)
			assert.True(t, first.InMainNamespace())

			second := pages[1]
			assert.Equal(t, "Talk:dictionary", second.Title)
			require.NotNil(t, second.Namespace)
			assert.Equal(t, 1, *second.Namespace)
			require.NotNil(t, second.ID)
			assert.Equal(t, 17, *second.ID)
			require.NotNil(t, second.RevisionID)
			assert.Equal(t, 8001, *second.RevisionID)
			assert.Nil(t, second.ContributorID, "deleted contributor carries no id")
			assert.Empty(t, second.Text)
			assert.False(t, second.InMainNamespace())
		})
	}
}

func TestStrategiesAgreeByteForByte(t *testing.T) {
	var reference []*dump.Page
	for i, strategy := range allStrategies {
		src, err := dump.NewSource(strategy, strings.NewReader(sampleDump))
		require.NoError(t, err)
		pages := drain(t, src)
		if i == 0 {
			reference = pages
			continue
		}
		require.Len(t, pages, len(reference))
		for j, page := range pages {
			assert.Equal(t, reference[j].Title, page.Title, "strategy %s page %d", strategy, j)
			assert.Equal(t, reference[j].Namespace, page.Namespace, "strategy %s page %d", strategy, j)
			assert.Equal(t, reference[j].ID, page.ID, "strategy %s page %d", strategy, j)
			assert.Equal(t, reference[j].Text, page.Text, "strategy %s page %d", strategy, j)
		}
	}
}

func TestEndOfStreamKeepsReturningNil(t *testing.T) {
	for _, strategy := range allStrategies {
		t.Run(string(strategy), func(t *testing.T) {
			src, err := dump.NewSource(strategy, strings.NewReader(sampleDump))
			require.NoError(t, err)
			drain(t, src)

			// The documented choice: once a source has reported end of
			// stream it deterministically keeps doing so.
			for i := 0; i < 3; i++ {
				page, err := src.NextPage()
				require.NoError(t, err)
				assert.Nil(t, page)
			}
		})
	}
}

func TestNewSourceRejectsUnknownStrategy(t *testing.T) {
	_, err := dump.NewSource("sax", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reader strategy")
}

func TestXMLSourceMalformedInputEndsStream(t *testing.T) {
	src := dump.NewXMLSource(strings.NewReader("<mediawiki><page><title>x</title><ns>0"))
	page, err := src.NextPage()
	require.NoError(t, err, "tokenizer errors must look like end of stream")
	assert.Nil(t, page)
}

func TestXMLSourceNamespaces(t *testing.T) {
	src := dump.NewXMLSource(strings.NewReader(sampleDump))
	drain(t, src)

	ns := src.Namespaces()
	assert.Equal(t, "", ns[0])
	assert.Equal(t, "Talk", ns[1])
}

func TestXMLSourceNumericFieldIsHardError(t *testing.T) {
	broken := strings.Replace(sampleDump, "<ns>0</ns>", "<ns>zero</ns>", 1)
	src := dump.NewXMLSource(strings.NewReader(broken))
	_, err := src.NextPage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespace")
}

func TestLineSourceNumericFieldIsHardError(t *testing.T) {
	broken := strings.Replace(sampleDump, "<id>16</id>", "<id>sixteen</id>", 1)
	src := dump.NewLineSource(strings.NewReader(broken))
	_, err := src.NextPage()
	require.Error(t, err)
}

func TestLineSourceToleratesDialectNoise(t *testing.T) {
	// Unknown elements between the recognized literals must not derail
	// the state machine.
	noisy := strings.Replace(sampleDump, "    <ns>0</ns>\n", "    <ns>0</ns>\n    <dialect>extra</dialect>\n", 1)
	src := dump.NewLineSource(strings.NewReader(noisy))
	page, err := src.NextPage()
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "dictionary", page.Title)
}

func TestStrictSourceFailsLoudlyWithPosition(t *testing.T) {
	broken := strings.Replace(sampleDump, "  <page>", " <page>", 1)
	src := dump.NewStrictSource(strings.NewReader(broken))
	_, err := src.NextPage()
	require.Error(t, err)

	var perr *dump.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Greater(t, perr.Offset, int64(0))
	assert.Greater(t, perr.Line, 1)
	assert.Contains(t, err.Error(), "expected")
}

func TestStrictSourceRejectsReorderedAttributes(t *testing.T) {
	broken := strings.Replace(sampleDump,
		`<text bytes="60" sha1="phoiac9h4m842xq45sp7s6u21eteeq1" xml:space="preserve">`,
		`<text sha1="phoiac9h4m842xq45sp7s6u21eteeq1" bytes="60" xml:space="preserve">`, 1)
	src := dump.NewStrictSource(strings.NewReader(broken))
	_, err := src.NextPage()
	require.Error(t, err)
}

func TestStrictSourceErrorEndsStream(t *testing.T) {
	broken := strings.Replace(sampleDump, "  <page>", " <page>", 1)
	src := dump.NewStrictSource(strings.NewReader(broken))
	_, err := src.NextPage()
	require.Error(t, err)

	page, err := src.NextPage()
	require.NoError(t, err)
	assert.Nil(t, page)
}
