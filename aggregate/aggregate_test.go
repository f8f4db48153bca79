package aggregate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wikidiff/libdiff"
	"github.com/signadot/wikidiff/parse"
	"github.com/signadot/wikidiff/reconcile"
)

func aggregate(t *testing.T, prev, curr string) Counts {
	t.Helper()
	t1, t2 := parse.Parse(prev), parse.Parse(curr)
	libdiff.Prune(t1, t2)
	s, err := libdiff.Diff(context.Background(), t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	libdiff.DetectMoves(s)
	return Aggregate(reconcile.Reconcile(s))
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr string
		want       Counts
	}{
		{
			name: "punctuation",
			prev: "Hello world.",
			curr: "Hello world!",
			want: Counts{
				"Punctuation": {Change: 1},
				"Sentence":    {Change: 1},
				"Paragraph":   {Change: 1},
			},
		},
		{
			name: "category",
			prev: "text\n[[Category:A]]",
			curr: "text\n[[Category:B]]",
			want: Counts{"Category": {Change: 1}},
		},
		{
			name: "section swap",
			prev: "== S1 ==\none\n== S2 ==\ntwo\n",
			curr: "== S2 ==\ntwo\n== S1 ==\none\n",
			want: Counts{"Section": {Move: 1}},
		},
		{
			name: "new text",
			prev: "",
			curr: "New section text.",
			want: Counts{
				"Whitespace":  {Insert: 2},
				"Punctuation": {Insert: 1},
				"Word":        {Insert: 3},
				"Sentence":    {Insert: 1},
				"Paragraph":   {Insert: 1},
			},
		},
		{
			name: "template parameter",
			prev: "{{Infobox|name=A}} text",
			curr: "{{Infobox|name=B}} text",
			want: Counts{"Template": {Change: 1}},
		},
		{
			name: "identity",
			prev: "Same {{t}} [[x]].\n== H ==\nmore",
			curr: "Same {{t}} [[x]].\n== H ==\nmore",
			want: Counts{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, aggregate(t, tt.prev, tt.curr)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexicalOverlap(t *testing.T) {
	got := Lexical("one two three", "one four", "en")
	want := Counts{
		"Whitespace": {Remove: 1},
		"Word":       {Change: 1, Remove: 1},
		"Sentence":   {Change: 1},
		"Paragraph":  {Change: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	c := Counts{"Template": {Insert: 1}}
	c.Merge(Counts{"Template": {Insert: 2, Move: 1}, "Media": {Remove: 1}})
	want := Counts{"Template": {Insert: 3, Move: 1}, "Media": {Remove: 1}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Media", "Template"}, c.Keys()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
