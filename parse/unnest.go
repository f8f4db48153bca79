package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/wikitext"
)

type unnester struct {
	t     *ir.Tree
	o     *parseOpts
	added []int
}

// Unnest re-parses the markup of node i and attaches its typed
// sub-elements as children, recursively. Table rows and cells and plain
// text are skipped, except that bare media file names in template
// parameters and gallery lines become Media nodes. A node that already
// has children, or whose markup cannot be re-parsed, is left alone.
//
// Unnest returns the indices of the nodes it added. Unless opts say
// otherwise the tree's language is used.
func Unnest(t *ir.Tree, i int, opts ...ParseOption) []int {
	u := &unnester{t: t, o: newOpts(append([]ParseOption{Language(t.Language)}, opts...))}
	u.expand(i)
	return u.added
}

// UnnestAll unnests every top-level node of every section and returns
// the number of nodes added.
func UnnestAll(t *ir.Tree, opts ...ParseOption) int {
	u := &unnester{t: t, o: newOpts(append([]ParseOption{Language(t.Language)}, opts...))}
	for _, s := range t.ChildrenOf(ir.Root) {
		for _, c := range t.ChildrenOf(s) {
			u.expand(c)
		}
	}
	return len(u.added)
}

func (u *unnester) expand(i int) {
	n := *u.t.Node(i)
	if !n.Type.Unnestable() || !u.t.IsLeaf(i) {
		return
	}
	elems, err := wikitext.Parse(n.Raw, u.o.scanOpts()...)
	if err != nil {
		if debug.Parse() {
			debug.Logf("unnest %s: %v\n", n.Name, err)
		}
		return
	}
	if len(elems) != 1 {
		return
	}
	e := &elems[0]
	switch {
	case e.Kind == wikitext.KText:
		return
	case e.Kind == wikitext.KTag && wikitext.IsOpaqueTag(e.Name):
		return
	case n.Type == ir.GalleryType:
		u.gallery(i, e)
		return
	case e.Kind == wikitext.KExternalLink:
		// only the label of a bracketed link is markup
		c := e.Content()
		sp := strings.IndexByte(c, ' ')
		if sp < 0 {
			return
		}
		u.content(i, c[sp+1:], e.Inner+sp+1)
		return
	}
	u.content(i, e.Content(), e.Inner)
}

// content attaches the elements of s, found at byte offset base in the
// raw text of parent.
func (u *unnester) content(parent int, s string, base int) {
	elems, err := wikitext.Parse(s, u.o.scanOpts()...)
	if err != nil {
		return
	}
	ptype := u.t.Node(parent).Type
	for i := range elems {
		e := &elems[i]
		off := base + e.Offset
		if e.Kind == wikitext.KText {
			if ptype == ir.TemplateType || ptype == ir.GalleryType {
				for _, sp := range wikitext.FindMediaRefs(e.Raw) {
					u.add(parent, ir.MediaType, e.Raw[sp[0]:sp[1]], off+sp[0])
				}
			}
			continue
		}
		typ := u.o.classify(e)
		if typ == ir.TableElementType {
			continue
		}
		c := u.add(parent, typ, e.Raw, off)
		if typ == ir.HeadingType {
			u.t.Node(c).Label = e.Raw
		}
		u.expand(c)
	}
}

func (u *unnester) gallery(i int, e *wikitext.Element) {
	items, err := wikitext.ParseGallery(e.Content())
	if err != nil {
		if debug.Parse() {
			debug.Logf("unnest gallery: %v\n", err)
		}
		return
	}
	for _, item := range items {
		u.add(i, ir.MediaType, item.File, e.Inner+item.Offset)
		if item.Caption != "" {
			u.content(i, item.Caption, e.Inner+item.CaptionOffset)
		}
	}
}

// add attaches a child of parent for raw, which starts at byte offset
// off of the parent's raw text.
func (u *unnester) add(parent int, typ ir.Type, raw string, off int) int {
	p := u.t.Node(parent)
	n := ir.Node{
		Name:    typ.String(),
		Type:    typ,
		Raw:     raw,
		Hash:    ir.HashString(raw),
		Offset:  p.Offset + utf8.RuneCountInString(p.Raw[:off]),
		Section: p.Section,
	}
	c := u.t.Add(parent, n)
	u.added = append(u.added, c)
	return c
}
