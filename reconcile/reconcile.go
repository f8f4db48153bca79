// Package reconcile maps sections across two revisions and merges the
// scattered Text entries of an edit script into section level text
// changes.
package reconcile

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/libdiff"
	"github.com/signadot/wikidiff/parse"
)

// SectionMap relates the sections of two revisions. A section without
// counterpart maps to the empty id.
type SectionMap struct {
	PrevToCurr map[ir.SectionID]ir.SectionID
	CurrToPrev map[ir.SectionID]ir.SectionID
}

// TextChange is the comparison of the rendered text of a section with
// that of its counterpart. One of the sections may be absent, in which
// case its id and text are empty.
type TextChange struct {
	PrevSection, CurrSection ir.SectionID
	Prev, Curr               string
	Delta                    *libdiff.TextDelta
}

type Result struct {
	// Script holds the non text entries of the reconciled script.
	Script   *libdiff.EditScript
	Sections *SectionMap
	Text     []TextChange
}

// MapSections builds the section map of s. Sections whose heading was
// removed or inserted have no counterpart. Sections whose heading moved
// are put back at their previous position before the remaining sections
// are paired in order.
func MapSections(s *libdiff.EditScript) *SectionMap {
	m, _ := mapSections(s)
	return m
}

// mapSections also returns the moves of s that leave their section at the
// position it had among the paired sections; such a move relocates
// nothing.
func mapSections(s *libdiff.EditScript) (*SectionMap, map[libdiff.Pair]bool) {
	removed := map[ir.SectionID]bool{}
	inserted := map[ir.SectionID]bool{}
	for _, i := range s.Removed {
		if id, ok := sectionOf(s.Prev, i); ok {
			removed[id] = true
		}
	}
	for _, i := range s.Inserted {
		if id, ok := sectionOf(s.Curr, i); ok {
			inserted[id] = true
		}
	}
	var prevOrder, currOrder []ir.SectionID
	for _, id := range s.Prev.SectionIDs() {
		if !removed[id] {
			prevOrder = append(prevOrder, id)
		}
	}
	for _, id := range s.Curr.SectionIDs() {
		if !inserted[id] {
			currOrder = append(currOrder, id)
		}
	}

	type move struct {
		pos        int
		prev, curr ir.SectionID
	}
	var moves []move
	stays := map[libdiff.Pair]bool{}
	for _, p := range s.Moved {
		a, aok := sectionOf(s.Prev, p.Prev)
		b, bok := sectionOf(s.Curr, p.Curr)
		if !aok || !bok {
			continue
		}
		pos := slices.Index(prevOrder, a)
		if pos >= 0 && pos == slices.Index(currOrder, b) {
			stays[p] = true
			continue
		}
		moves = append(moves, move{pos, a, b})
	}
	slices.SortStableFunc(moves, func(x, y move) int { return x.pos - y.pos })
	for _, m := range moves {
		k := slices.Index(currOrder, m.curr)
		if k < 0 || m.pos < 0 {
			continue
		}
		currOrder = slices.Delete(currOrder, k, k+1)
		currOrder = slices.Insert(currOrder, min(m.pos, len(currOrder)), m.curr)
	}

	res := &SectionMap{
		PrevToCurr: map[ir.SectionID]ir.SectionID{},
		CurrToPrev: map[ir.SectionID]ir.SectionID{},
	}
	for id := range removed {
		res.PrevToCurr[id] = ""
	}
	for id := range inserted {
		res.CurrToPrev[id] = ""
	}
	for k, id := range prevOrder {
		if k < len(currOrder) {
			res.PrevToCurr[id] = currOrder[k]
			res.CurrToPrev[currOrder[k]] = id
			continue
		}
		res.PrevToCurr[id] = ""
	}
	for _, id := range currOrder[min(len(prevOrder), len(currOrder)):] {
		res.CurrToPrev[id] = ""
	}
	if debug.Sections() {
		debug.Logf("sections: %v\n", res.PrevToCurr)
	}
	return res, stays
}

// sectionOf returns the section a Heading or a childless Section entry
// stands for.
func sectionOf(t *ir.Tree, i int) (ir.SectionID, bool) {
	n := t.Node(i)
	switch n.Type {
	case ir.HeadingType:
		if n.Parent != ir.NoNode && t.Node(n.Parent).Type == ir.SectionType {
			return n.Section, true
		}
	case ir.SectionType:
		return n.Section, true
	}
	return "", false
}

type sectionPair struct {
	prev, curr ir.SectionID
}

type merger struct {
	s     *libdiff.EditScript
	m     *SectionMap
	pairs []sectionPair
	seen  map[sectionPair]bool
}

func (g *merger) schedulePrev(id ir.SectionID) {
	g.schedule(sectionPair{id, g.m.PrevToCurr[id]})
}

func (g *merger) scheduleCurr(id ir.SectionID) {
	g.schedule(sectionPair{g.m.CurrToPrev[id], id})
}

func (g *merger) schedule(p sectionPair) {
	if g.seen[p] {
		return
	}
	g.seen[p] = true
	g.pairs = append(g.pairs, p)
}

// Reconcile maps the sections of s and replaces its Text entries, moves
// included, by one text comparison per affected section pair. Childless
// Section entries stay in the script and also have their text compared.
// Pairs whose normalized text is equal yield nothing.
func Reconcile(s *libdiff.EditScript) *Result {
	m, stays := mapSections(s)
	g := &merger{s: s, m: m, seen: map[sectionPair]bool{}}
	out := &libdiff.EditScript{Prev: s.Prev, Curr: s.Curr, Cost: s.Cost}
	for _, i := range s.Removed {
		n := s.Prev.Node(i)
		switch n.Type {
		case ir.TextType:
			g.schedulePrev(n.Section)
			continue
		case ir.SectionType:
			g.schedulePrev(n.Section)
		}
		out.Removed = append(out.Removed, i)
	}
	for _, i := range s.Inserted {
		n := s.Curr.Node(i)
		switch n.Type {
		case ir.TextType:
			g.scheduleCurr(n.Section)
			continue
		case ir.SectionType:
			g.scheduleCurr(n.Section)
		}
		out.Inserted = append(out.Inserted, i)
	}
	for _, p := range s.Changed {
		a, b := s.Prev.Node(p.Prev), s.Curr.Node(p.Curr)
		switch a.Type {
		case ir.TextType:
			g.schedulePrev(a.Section)
			g.scheduleCurr(b.Section)
			continue
		case ir.SectionType:
			g.schedulePrev(a.Section)
			g.scheduleCurr(b.Section)
		}
		out.Changed = append(out.Changed, p)
	}
	for _, p := range s.Moved {
		a, b := s.Prev.Node(p.Prev), s.Curr.Node(p.Curr)
		if a.Type == ir.TextType {
			g.schedulePrev(a.Section)
			g.scheduleCurr(b.Section)
			continue
		}
		if stays[p] {
			continue
		}
		out.Moved = append(out.Moved, p)
	}
	res := &Result{Script: out, Sections: m}
	for _, p := range g.pairs {
		prev := g.text(s.Prev, p.prev)
		curr := g.text(s.Curr, p.curr)
		if prev == curr {
			continue
		}
		res.Text = append(res.Text, TextChange{
			PrevSection: p.prev,
			CurrSection: p.curr,
			Prev:        prev,
			Curr:        curr,
			Delta:       libdiff.DiffText(prev, curr),
		})
	}
	return res
}

// text is the normalized rendered text of section id of t, or "" when
// there is no such section.
func (g *merger) text(t *ir.Tree, id ir.SectionID) string {
	if id == "" {
		return ""
	}
	sec, ok := t.Section(id)
	if !ok {
		return ""
	}
	return Normalize(parse.SectionText(sec.Raw, t.Language))
}

// Normalize puts text in the form section texts are compared in.
func Normalize(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
