package wikidiff

import (
	"github.com/signadot/wikidiff/aggregate"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/reconcile"
)

// Granularity is how finely a Result describes the difference.
type Granularity string

const (
	// NodeGranularity results have an entry per changed content unit.
	NodeGranularity Granularity = "node"
	// SectionGranularity results have entries for whole sections only.
	SectionGranularity Granularity = "section"
	// NoGranularity results have no entries; the diff did not finish.
	NoGranularity Granularity = "none"
)

type Result struct {
	Granularity Granularity `json:"granularity" yaml:"granularity"`
	// Complete is false when the time budget forced a coarser result.
	Complete bool             `json:"complete" yaml:"complete"`
	Edits    []Edit           `json:"edits" yaml:"edits"`
	Text     []TextEdit       `json:"text" yaml:"text"`
	Counts   aggregate.Counts `json:"counts" yaml:"counts"`

	lang string
}

// Side locates one side of an edit.
type Side struct {
	Section ir.SectionID `json:"section" yaml:"section"`
	Text    string       `json:"text" yaml:"text"`
	// Offset is in runes from the start of the section.
	Offset int `json:"offset" yaml:"offset"`
}

// Edit is a node level change. Prev is nil for inserts, Curr for
// removals.
type Edit struct {
	Type   ir.Type          `json:"type" yaml:"type"`
	Action aggregate.Action `json:"action" yaml:"action"`
	Prev   *Side            `json:"prev,omitempty" yaml:"prev,omitempty"`
	Curr   *Side            `json:"curr,omitempty" yaml:"curr,omitempty"`
}

// TextEdit is a change to the running text of a section.
type TextEdit struct {
	Action      aggregate.Action `json:"action" yaml:"action"`
	PrevSection ir.SectionID     `json:"prevSection,omitempty" yaml:"prevSection,omitempty"`
	CurrSection ir.SectionID     `json:"currSection,omitempty" yaml:"currSection,omitempty"`
	// Offset is the rune offset of the first difference in the previous
	// section text.
	Offset   int      `json:"offset" yaml:"offset"`
	Removed  []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Inserted []string `json:"inserted,omitempty" yaml:"inserted,omitempty"`

	prev, curr string
}

// Empty reports whether r records no difference. An incomplete result
// with no entries is not known to be empty.
func (r *Result) Empty() bool {
	return r.Complete && len(r.Edits) == 0 && len(r.Text) == 0
}

func side(t *ir.Tree, i int) *Side {
	n := t.Node(i)
	return &Side{Section: n.Section, Text: n.Raw, Offset: n.Offset}
}

func newResult(g Granularity, complete bool, r *reconcile.Result) *Result {
	s := r.Script
	res := &Result{
		Granularity: g,
		Complete:    complete,
		Counts:      aggregate.Aggregate(r),
		lang:        s.Prev.Language,
	}
	for _, i := range s.Removed {
		res.Edits = append(res.Edits, Edit{Type: s.Prev.Node(i).Type, Action: aggregate.Remove, Prev: side(s.Prev, i)})
	}
	for _, i := range s.Inserted {
		res.Edits = append(res.Edits, Edit{Type: s.Curr.Node(i).Type, Action: aggregate.Insert, Curr: side(s.Curr, i)})
	}
	for _, p := range s.Changed {
		res.Edits = append(res.Edits, Edit{
			Type:   s.Prev.Node(p.Prev).Type,
			Action: aggregate.Change,
			Prev:   side(s.Prev, p.Prev),
			Curr:   side(s.Curr, p.Curr),
		})
	}
	for _, p := range s.Moved {
		res.Edits = append(res.Edits, Edit{
			Type:   s.Prev.Node(p.Prev).Type,
			Action: aggregate.Move,
			Prev:   side(s.Prev, p.Prev),
			Curr:   side(s.Curr, p.Curr),
		})
	}
	for _, tc := range r.Text {
		res.Text = append(res.Text, textEdit(&tc))
	}
	return res
}

func textEdit(tc *reconcile.TextChange) TextEdit {
	te := TextEdit{
		Action:      aggregate.Change,
		PrevSection: tc.PrevSection,
		CurrSection: tc.CurrSection,
		prev:        tc.Prev,
		curr:        tc.Curr,
	}
	switch {
	case tc.Prev == "":
		te.Action = aggregate.Insert
	case tc.Curr == "":
		te.Action = aggregate.Remove
	}
	if d := tc.Delta; d != nil {
		te.Offset = d.Offset
		te.Removed = d.Removed
		te.Inserted = d.Inserted
	}
	return te
}

// recount recomputes Counts from the entries of r.
func (r *Result) recount() {
	c := aggregate.Counts{}
	for i := range r.Edits {
		e := &r.Edits[i]
		if e.Type != ir.TextType {
			c.Add(e.Type.String(), e.Action, 1)
		}
	}
	for i := range r.Text {
		c.Merge(aggregate.Lexical(r.Text[i].prev, r.Text[i].curr, r.lang))
	}
	r.Counts = c
}
