package reconcile

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/libdiff"
	"github.com/signadot/wikidiff/parse"
)

func script(t *testing.T, prev, curr string) *libdiff.EditScript {
	t.Helper()
	t1, t2 := parse.Parse(prev), parse.Parse(curr)
	libdiff.Prune(t1, t2)
	s, err := libdiff.Diff(context.Background(), t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	libdiff.DetectMoves(s)
	return s
}

var ignoreDelta = cmpopts.IgnoreFields(TextChange{}, "Delta")

func TestReconcileText(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr string
		want       []TextChange
	}{
		{
			name: "punctuation",
			prev: "Hello world.",
			curr: "Hello world!",
			want: []TextChange{{"0: _Lede_", "0: _Lede_", "Hello world.", "Hello world!", nil}},
		},
		{
			name: "unrelated node",
			prev: "Some text {{a}}.",
			curr: "Some text {{b}}.",
		},
		{
			name: "same rendered text",
			prev: "Hello <!-- c -->world",
			curr: "Hello world",
		},
		{
			name: "removed section",
			prev: "x\n== A ==\nalpha beta\n",
			curr: "x\n",
			want: []TextChange{{"1: A", "", "alpha beta", "", nil}},
		},
		{
			name: "new text",
			prev: "",
			curr: "New section text.",
			want: []TextChange{{"0: _Lede_", "0: _Lede_", "", "New section text.", nil}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Reconcile(script(t, tt.prev, tt.curr))
			if diff := cmp.Diff(tt.want, res.Text, ignoreDelta); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			for _, tc := range res.Text {
				if tc.Delta == nil {
					t.Errorf("missing delta for %s", tc.PrevSection)
				}
			}
			for _, i := range res.Script.Removed {
				if res.Script.Prev.Node(i).Type == ir.TextType {
					t.Errorf("text entry left in script")
				}
			}
		})
	}
}

func TestReconcileKeepsNodes(t *testing.T) {
	res := Reconcile(script(t, "Some text {{a}}.", "Some text {{b}}."))
	if len(res.Script.Changed) != 1 {
		t.Errorf("changed %v", res.Script.Changed)
	}
	res = Reconcile(script(t, "x\n== A ==\nalpha beta\n", "x\n"))
	if len(res.Script.Removed) != 1 || res.Script.Prev.Node(res.Script.Removed[0]).Type != ir.HeadingType {
		t.Errorf("removed %v", res.Script.Removed)
	}
	if got := res.Sections.PrevToCurr["1: A"]; got != "" {
		t.Errorf("removed section maps to %q", got)
	}
}

func TestMapSectionsMove(t *testing.T) {
	s := script(t, "Lede\n== A ==\nalpha\n== B ==\nbeta\n", "Lede\n== B ==\nbeta\n== A ==\nalpha\n")
	m := MapSections(s)
	want := &SectionMap{
		PrevToCurr: map[ir.SectionID]ir.SectionID{"0: _Lede_": "0: _Lede_", "1: A": "2: A", "2: B": "1: B"},
		CurrToPrev: map[ir.SectionID]ir.SectionID{"0: _Lede_": "0: _Lede_", "2: A": "1: A", "1: B": "2: B"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	res := Reconcile(s)
	if len(res.Text) != 0 || len(res.Script.Moved) != 1 {
		t.Errorf("text %v moved %v", res.Text, res.Script.Moved)
	}
}

func TestMapSectionsInserted(t *testing.T) {
	s := script(t, "x\n== A ==\na\n", "x\n== New ==\nn\n== A ==\na\n")
	m := MapSections(s)
	if got := m.CurrToPrev["1: New"]; got != "" {
		t.Errorf("inserted section maps to %q", got)
	}
	if got := m.PrevToCurr["1: A"]; got != "2: A" {
		t.Errorf("A maps to %q", got)
	}
}

func TestReconcileTextMove(t *testing.T) {
	t1 := parse.Parse("== A ==\nfoo\n== B ==\nbar")
	t2 := parse.Parse("== A ==\n\n== B ==\nbar foo")
	prevText := t1.ChildrenOf(t1.Sections[1].Node)[1]
	currText := t2.ChildrenOf(t2.Sections[2].Node)[1]
	s := &libdiff.EditScript{
		Prev:  t1,
		Curr:  t2,
		Moved: []libdiff.Pair{{Prev: prevText, Curr: currText}},
	}
	res := Reconcile(s)
	want := []TextChange{
		{"1: A", "1: A", "foo", "", nil},
		{"2: B", "2: B", "bar", "bar foo", nil},
	}
	if diff := cmp.Diff(want, res.Text, ignoreDelta); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(res.Script.Moved) != 0 {
		t.Errorf("text move counted as node move")
	}
}

func TestReconcileHeadingInPlace(t *testing.T) {
	t1 := parse.Parse("x\n== B ==\nb\n")
	t2 := parse.Parse("y\n== B ==\nb c\n")
	prevHeading := t1.ChildrenOf(t1.Sections[1].Node)[0]
	currHeading := t2.ChildrenOf(t2.Sections[1].Node)[0]
	s := &libdiff.EditScript{
		Prev:  t1,
		Curr:  t2,
		Moved: []libdiff.Pair{{Prev: prevHeading, Curr: currHeading}},
	}
	res := Reconcile(s)
	if len(res.Script.Moved) != 0 {
		t.Errorf("moved %v", res.Script.Moved)
	}
	if got := res.Sections.PrevToCurr["1: B"]; got != "1: B" {
		t.Errorf("B maps to %q", got)
	}
}
