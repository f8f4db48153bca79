package wikidiff

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wikidiff/aggregate"
	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/libdiff"
)

func TestDiffCounts(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr string
		want       aggregate.Counts
	}{
		{
			name: "punctuation",
			prev: "Hello world.",
			curr: "Hello world!",
			want: aggregate.Counts{
				"Punctuation": {aggregate.Change: 1},
				"Sentence":    {aggregate.Change: 1},
				"Paragraph":   {aggregate.Change: 1},
			},
		},
		{
			name: "category",
			prev: "Some text.\n[[Category:A]]",
			curr: "Some text.\n[[Category:B]]",
			want: aggregate.Counts{"Category": {aggregate.Change: 1}},
		},
		{
			name: "section swap",
			prev: "== S1 ==\nFirst.\n== S2 ==\nSecond.\n",
			curr: "== S2 ==\nSecond.\n== S1 ==\nFirst.\n",
			want: aggregate.Counts{"Section": {aggregate.Move: 1}},
		},
		{
			name: "section swap without final newline",
			prev: "== S1 ==\nFirst.\n== S2 ==\nSecond.",
			curr: "== S2 ==\nSecond.\n== S1 ==\nFirst.",
			want: aggregate.Counts{"Section": {aggregate.Move: 1}},
		},
		{
			name: "new text",
			prev: "",
			curr: "New section text.",
			want: aggregate.Counts{
				"Whitespace":  {aggregate.Insert: 2},
				"Punctuation": {aggregate.Insert: 1},
				"Word":        {aggregate.Insert: 3},
				"Sentence":    {aggregate.Insert: 1},
				"Paragraph":   {aggregate.Insert: 1},
			},
		},
		{
			name: "template parameter",
			prev: "{{Infobox|name=A}} text",
			curr: "{{Infobox|name=B}} text",
			want: aggregate.Counts{"Template": {aggregate.Change: 1}},
		},
		{
			name: "template to link",
			prev: "a {{t}} b",
			curr: "a [[Link]] b",
			want: aggregate.Counts{
				"Template": {aggregate.Remove: 1},
				"Wikilink": {aggregate.Insert: 1},
			},
		},
		{
			name: "template moved between sections",
			prev: "== A ==\n{{t|x}} alpha\n== B ==\nbeta\n",
			curr: "== A ==\nalpha\n== B ==\n{{t|x}}beta\n",
			want: aggregate.Counts{"Template": {aggregate.Move: 1}},
		},
		{
			name: "templates moved from lede",
			prev: "{{t}} a {{t}}\n== B ==\nb\n",
			curr: "a\n== B ==\n{{t}} b {{t}}\n",
			want: aggregate.Counts{"Template": {aggregate.Move: 2}},
		},
		{
			name: "nested media",
			prev: "{{Infobox|image=Old.jpg}}",
			curr: "{{Infobox|image=New.jpg}}",
			want: aggregate.Counts{"Template": {aggregate.Change: 1}, "Media": {aggregate.Change: 1}},
		},
	}
	tool := DefaultTool()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.Diff(context.Background(), tt.prev, tt.curr)
			if err != nil {
				t.Fatal(err)
			}
			if res.Granularity != NodeGranularity || !res.Complete {
				t.Errorf("granularity %s complete %v", res.Granularity, res.Complete)
			}
			if diff := cmp.Diff(tt.want, res.Counts); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffIdentity(t *testing.T) {
	docs := []string{
		"",
		"Plain.",
		"Lede {{Infobox|image=A.jpg|name=[[X]]}}\n== H ==\n<gallery>\nB.png|cap\n</gallery>\n* item ''it''\n{|\n| cell\n|}\n[[Category:C]]",
	}
	for _, doc := range docs {
		res, err := DefaultTool().Diff(context.Background(), doc, doc)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Empty() || len(res.Counts) != 0 {
			t.Errorf("%q: %+v", doc, res)
		}
	}
}

func TestDiffEdits(t *testing.T) {
	res, err := DefaultTool().Diff(context.Background(), "a {{t}} b", "a [[Link]] b")
	if err != nil {
		t.Fatal(err)
	}
	want := []Edit{
		{Type: ir.TemplateType, Action: aggregate.Remove, Prev: &Side{Section: "0: _Lede_", Text: "{{t}}", Offset: 2}},
		{Type: ir.WikilinkType, Action: aggregate.Insert, Curr: &Side{Section: "0: _Lede_", Text: "[[Link]]", Offset: 2}},
	}
	if diff := cmp.Diff(want, res.Edits); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffTextEdits(t *testing.T) {
	res, err := DefaultTool().Diff(context.Background(), "x\n== A ==\nOld words here.\n", "x\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Text) != 1 {
		t.Fatalf("text edits %v", res.Text)
	}
	te := res.Text[0]
	if te.Action != aggregate.Remove || te.PrevSection != "1: A" || te.CurrSection != "" {
		t.Errorf("got %+v", te)
	}
	if diff := cmp.Diff([]string{"Old words here."}, te.Removed); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := res.Counts["Heading"][aggregate.Remove]; got != 1 {
		t.Errorf("heading removals %d", got)
	}
}

func TestDiffCollapsed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CollapseThreshold = 3
	tool, err := NewTool(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := tool.Diff(context.Background(), "x\n== A ==\nHello world.\n", "x\n== A ==\nHello world!\n")
	if err != nil {
		t.Fatal(err)
	}
	if res.Granularity != SectionGranularity || !res.Complete {
		t.Errorf("granularity %s complete %v", res.Granularity, res.Complete)
	}
	want := aggregate.Counts{
		"Section":     {aggregate.Change: 1},
		"Punctuation": {aggregate.Change: 1},
		"Sentence":    {aggregate.Change: 1},
		"Paragraph":   {aggregate.Change: 1},
	}
	if diff := cmp.Diff(want, res.Counts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

var granularityRank = map[Granularity]int{NodeGranularity: 0, SectionGranularity: 1, NoGranularity: 2}

func TestDiffTimeoutMonotonic(t *testing.T) {
	prev := "Lede {{a}}\n== A ==\n[[x]] one\n== B ==\ntwo {{b|1}}\n"
	curr := "Lede {{a}}\n== A ==\n[[y]] one\n== B ==\ntwo {{b|2}}\n"
	last := -1
	for _, budget := range []time.Duration{time.Minute, time.Second, time.Nanosecond} {
		cfg := DefaultConfig()
		cfg.Timeout = Duration(budget)
		tool, err := NewTool(cfg)
		if err != nil {
			t.Fatal(err)
		}
		res, err := tool.Diff(context.Background(), prev, curr)
		if err != nil {
			t.Fatalf("%s: %v", budget, err)
		}
		rank := granularityRank[res.Granularity]
		if rank < last {
			t.Errorf("%s: granularity %s finer than with a larger budget", budget, res.Granularity)
		}
		last = rank
		if budget == time.Nanosecond && (res.Granularity != NoGranularity || res.Complete || res.Empty()) {
			t.Errorf("expired budget: %+v", res)
		}
	}
}

func TestDiffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DefaultTool().Diff(ctx, "a", "b")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestFinishAfterDeadline(t *testing.T) {
	tool := DefaultTool()
	script := func() *libdiff.EditScript {
		s, err := libdiff.Diff(context.Background(), tool.Parse("a {{t}}"), tool.Parse("a {{u}}"))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	res, err := tool.finish(ctx, NodeGranularity, true, script())
	if err != nil {
		t.Fatal(err)
	}
	if res.Granularity != NoGranularity || res.Complete || len(res.Edits) != 0 {
		t.Errorf("got %+v", res)
	}
	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := tool.finish(ctx, NodeGranularity, true, script()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
	res, err = tool.finish(context.Background(), NodeGranularity, true, script())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(aggregate.Counts{"Template": {aggregate.Change: 1}}, res.Counts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffUnclosedMarkup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = Duration(10 * time.Second)
	tool, err := NewTool(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, unit := range []string{"[http://x ", "<ref>a "} {
		prev := strings.Repeat(unit, 20000)
		start := time.Now()
		res, err := tool.Diff(context.Background(), prev, prev+"z")
		if err != nil {
			t.Fatalf("%q: %v", unit, err)
		}
		if d := time.Since(start); d > 5*time.Second {
			t.Errorf("%q: took %s, granularity %s", unit, d, res.Granularity)
		}
	}
}

func TestWhere(t *testing.T) {
	res, err := DefaultTool().Diff(context.Background(), "a {{t}} b", "a [[Link]] b")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		expr  string
		edits int
		want  aggregate.Counts
	}{
		{`type == "Template"`, 1, aggregate.Counts{"Template": {aggregate.Remove: 1}}},
		{`action == "insert" && offset == 2`, 1, aggregate.Counts{"Wikilink": {aggregate.Insert: 1}}},
		{`section startsWith "0:"`, 2, res.Counts},
		{`text contains "nothing"`, 0, aggregate.Counts{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			w, err := CompileWhere(tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			got, err := res.Filter(w)
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Edits) != tt.edits {
				t.Errorf("edits %v", got.Edits)
			}
			if diff := cmp.Diff(tt.want, got.Counts); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	if _, err := CompileWhere(`offset + "x"`); err == nil {
		t.Errorf("expected compile error")
	}
	if _, err := CompileWhere(`offset`); err == nil {
		t.Errorf("expected non bool error")
	}
}

func TestWhereText(t *testing.T) {
	res, err := DefaultTool().Diff(context.Background(), "Hello world.", "Hello world!")
	if err != nil {
		t.Fatal(err)
	}
	w, err := CompileWhere(`type == "Text" && text contains "!"`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := res.Filter(w)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Text) != 1 {
		t.Fatalf("text %v", got.Text)
	}
	if diff := cmp.Diff(res.Counts, got.Counts); diff != "" {
		t.Errorf("(-orig +filtered):\n%s", diff)
	}
}
