// SPDX-License-Identifier: Apache-2.0

// Package dump reads MediaWiki export XML as a stream of page records.
//
// A Source yields one Page per call without ever materializing the whole
// dump. Three interchangeable strategies are provided: a generic XML
// tokenizer (XMLSource), a line-oriented state machine (LineSource), and a
// byte-exact recursive-descent reader (StrictSource). For a well-formed
// dump all three produce textually identical pages.
package dump

// Page is one dictionary entry together with the wikitext of the single
// revision carried in the dump. A Page is complete and immutable once
// returned by a Source; the source keeps no reference to it afterwards.
type Page struct {
	Title string

	// Namespace, ID, RevisionID and ContributorID are nil when the dump
	// did not supply them (deleted contributors have no id, for example).
	Namespace     *int
	ID            *int
	RevisionID    *int
	ContributorID *int

	// Text is the raw wikitext body. May be empty.
	Text string
}

// InMainNamespace reports whether the page lives in namespace 0, the only
// namespace whose wikitext is structurally analyzed downstream.
func (p *Page) InMainNamespace() bool {
	return p.Namespace != nil && *p.Namespace == 0
}
