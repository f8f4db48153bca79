// Package aggregate turns a reconciled edit script into counts of
// actions per content type and lexical category.
package aggregate

import (
	"sort"

	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/lexical"
	"github.com/signadot/wikidiff/reconcile"
)

type Action string

const (
	Insert Action = "insert"
	Remove Action = "remove"
	Change Action = "change"
	Move   Action = "move"
)

func Actions() []Action {
	return []Action{Insert, Remove, Change, Move}
}

// Counts maps a node type name or a lexical category to the number of
// times each action applies to it.
type Counts map[string]map[Action]int

func (c Counts) Add(key string, a Action, n int) {
	if n == 0 {
		return
	}
	m := c[key]
	if m == nil {
		m = map[Action]int{}
		c[key] = m
	}
	m[a] += n
}

func (c Counts) Merge(o Counts) {
	for key, m := range o {
		for a, n := range m {
			c.Add(key, a, n)
		}
	}
}

// Keys returns the keys of c, sorted.
func (c Counts) Keys() []string {
	res := make([]string, 0, len(c))
	for k := range c {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Aggregate counts the node entries of r by type and the lexical changes
// of its text changes by category.
func Aggregate(r *reconcile.Result) Counts {
	c := Counts{}
	s := r.Script
	for _, i := range s.Removed {
		c.addNode(s.Prev.Node(i).Type, Remove)
	}
	for _, i := range s.Inserted {
		c.addNode(s.Curr.Node(i).Type, Insert)
	}
	for _, p := range s.Changed {
		c.addNode(s.Prev.Node(p.Prev).Type, Change)
	}
	for _, p := range s.Moved {
		c.addNode(s.Prev.Node(p.Prev).Type, Move)
	}
	lang := s.Prev.Language
	for _, tc := range r.Text {
		c.Merge(Lexical(tc.Prev, tc.Curr, lang))
	}
	return c
}

func (c Counts) addNode(t ir.Type, a Action) {
	if t == ir.TextType {
		return
	}
	c.Add(t.String(), a, 1)
}

// Lexical compares the token multisets of prev and curr per category.
// Occurrences present on both sides pair up as changes; the excess of
// either side is a removal or an insertion.
func Lexical(prev, curr, lang string) Counts {
	a, b := lexical.Count(prev, lang), lexical.Count(curr, lang)
	removed, inserted := a.Minus(b), b.Minus(a)
	c := Counts{}
	for _, cat := range lexical.Categories(lang) {
		r, i := removed[cat], inserted[cat]
		overlap := min(r, i)
		c.Add(string(cat), Change, overlap)
		c.Add(string(cat), Remove, r-overlap)
		c.Add(string(cat), Insert, i-overlap)
	}
	return c
}
