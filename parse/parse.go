package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/wikitext"
)

// LedeTitle names the section before the first heading in section ids.
const LedeTitle = "_Lede_"

// Parse builds the tree of one revision. It never fails; markup the
// scanner rejects becomes a single Text node in the lede.
func Parse(text string, opts ...ParseOption) *ir.Tree {
	o := newOpts(opts)
	t := ir.NewTree(o.lang)
	elems, err := wikitext.Parse(text, o.scanOpts()...)
	if err != nil {
		if debug.Parse() {
			debug.Logf("parse: %v, falling back to text\n", err)
		}
		elems = []wikitext.Element{{Kind: wikitext.KText, Raw: text, InnerEnd: len(text)}}
		if text == "" {
			elems = nil
		}
	}
	for k, rs := range wikitext.SplitSections(text, elems) {
		o.addSection(t, k, &rs)
	}
	if debug.Parse() {
		debug.Logf("parse: %d sections %d nodes\n%v", len(t.Sections), t.Size(), t)
	}
	return t
}

// SectionID returns the id of the k'th section, counting the lede as 0.
// Ids are unique within a tree since k is.
func SectionID(k int, title string) ir.SectionID {
	if k == 0 {
		title = LedeTitle
	}
	return ir.SectionID(fmt.Sprintf("%d: %s", k, title))
}

func (o *parseOpts) addSection(t *ir.Tree, k int, rs *wikitext.RawSection) {
	id := SectionID(k, rs.Title)
	si := t.Add(ir.Root, ir.Node{
		Name:    string(id),
		Type:    ir.SectionType,
		Raw:     rs.Raw,
		Label:   rs.Title,
		// a section ends with the line break before the next heading,
		// which the last one lacks when the text has no final newline
		Hash:    ir.HashString(strings.TrimRight(rs.Raw, " \t\r\n")),
		Section: id,
	})
	t.Sections = append(t.Sections, ir.Section{
		ID:    id,
		Title: rs.Title,
		Level: rs.Level,
		Raw:   rs.Raw,
		Node:  si,
	})
	off := 0
	for i := range rs.Elements {
		e := &rs.Elements[i]
		t.Add(si, o.node(e, off, id))
		off += utf8.RuneCountInString(e.Raw)
	}
}

func (o *parseOpts) node(e *wikitext.Element, off int, id ir.SectionID) ir.Node {
	typ := o.classify(e)
	n := ir.Node{
		Name:    e.Name,
		Type:    typ,
		Raw:     e.Raw,
		Hash:    ir.HashString(e.Raw),
		Offset:  off,
		Section: id,
	}
	if n.Name == "" {
		n.Name = typ.String()
	}
	if typ == ir.HeadingType {
		n.Label = e.Raw
	}
	return n
}
