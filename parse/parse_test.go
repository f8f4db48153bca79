package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/wikidiff/ir"
)

type nodeSummary struct {
	Type    ir.Type
	Raw     string
	Offset  int
	Section ir.SectionID
}

func children(t *ir.Tree, i int) []nodeSummary {
	var res []nodeSummary
	for _, c := range t.ChildrenOf(i) {
		n := t.Node(c)
		res = append(res, nodeSummary{n.Type, n.Raw, n.Offset, n.Section})
	}
	return res
}

func TestParseSections(t *testing.T) {
	text := "Intro [[Paris]].\n== History ==\nOld {{cite|x}} text.\n"
	tree := Parse(text)
	ids := tree.SectionIDs()
	if diff := cmp.Diff([]ir.SectionID{"0: _Lede_", "1: History"}, ids); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	lede, hist := tree.Sections[0].Node, tree.Sections[1].Node
	want := []nodeSummary{
		{ir.TextType, "Intro ", 0, "0: _Lede_"},
		{ir.WikilinkType, "[[Paris]]", 6, "0: _Lede_"},
		{ir.TextType, ".\n", 15, "0: _Lede_"},
	}
	if diff := cmp.Diff(want, children(tree, lede)); diff != "" {
		t.Errorf("lede (-want +got):\n%s", diff)
	}
	want = []nodeSummary{
		{ir.HeadingType, "== History ==", 0, "1: History"},
		{ir.TextType, "\nOld ", 13, "1: History"},
		{ir.TemplateType, "{{cite|x}}", 18, "1: History"},
		{ir.TextType, " text.\n", 28, "1: History"},
	}
	if diff := cmp.Diff(want, children(tree, hist)); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
	sec := tree.Node(hist)
	if sec.Label != "History" || sec.Hash != ir.HashString("== History ==\nOld {{cite|x}} text.\n") {
		t.Errorf("section label %q hash %x", sec.Label, sec.Hash)
	}
	head := tree.Node(tree.ChildrenOf(hist)[0])
	if head.Label != "== History ==" {
		t.Errorf("heading label %q", head.Label)
	}
}

func TestParseEmpty(t *testing.T) {
	tree := Parse("")
	if got := tree.Size(); got != 2 {
		t.Errorf("size %d, want article and lede", got)
	}
}

func TestParseLinkTypes(t *testing.T) {
	tree := Parse("[[Datei:A.jpg|thumb]] [[Kategorie:X]] [[:Kategorie:Y]] [[File:B.png]]", Language("de-AT"))
	var got []ir.Type
	for _, c := range tree.ChildrenOf(tree.Sections[0].Node) {
		if n := tree.Node(c); n.Type != ir.TextType {
			got = append(got, n.Type)
		}
	}
	want := []ir.Type{ir.MediaType, ir.CategoryType, ir.WikilinkType, ir.MediaType}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if tree.Language != "de" {
		t.Errorf("language %q", tree.Language)
	}
}

func TestParseTagTypes(t *testing.T) {
	tree := Parse(`a<ref>x</ref><small>b</small><gallery>
File:A.jpg
</gallery><span>c</span>`)
	var got []ir.Type
	for _, c := range tree.ChildrenOf(tree.Sections[0].Node) {
		got = append(got, tree.Node(c).Type)
	}
	want := []ir.Type{ir.TextType, ir.ReferenceType, ir.TextFormattingType, ir.GalleryType, ir.OtherTagType}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseFallback(t *testing.T) {
	text := strings.Repeat("{{a|", 10) + strings.Repeat("}}", 10)
	tree := Parse(text, MaxDepth(5))
	want := []nodeSummary{{ir.TextType, text, 0, "0: _Lede_"}}
	if diff := cmp.Diff(want, children(tree, tree.Sections[0].Node)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUnnestTemplate(t *testing.T) {
	tree := Parse("{{Infobox|image=Skyline.jpg|map={{Map|x}}|[[Link]]}}")
	tmpl := tree.ChildrenOf(tree.Sections[0].Node)[0]
	added := Unnest(tree, tmpl)
	if len(added) != 3 {
		t.Fatalf("added %d nodes, want 3", len(added))
	}
	want := []nodeSummary{
		{ir.MediaType, "Skyline.jpg", 16, "0: _Lede_"},
		{ir.TemplateType, "{{Map|x}}", 32, "0: _Lede_"},
		{ir.WikilinkType, "[[Link]]", 42, "0: _Lede_"},
	}
	if diff := cmp.Diff(want, children(tree, tmpl)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if again := Unnest(tree, tmpl); len(again) != 0 {
		t.Errorf("second unnest added %d", len(again))
	}
}

func TestUnnestGallery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []ir.Type
	}{
		{
			name: "ok",
			in:   "<gallery>\nFile:A.jpg|A [[b]]\nB.png\n</gallery>",
			want: []ir.Type{ir.MediaType, ir.WikilinkType, ir.MediaType},
		},
		{
			name: "malformed",
			in:   "<gallery>\nnot an image\n</gallery>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Parse(tt.in)
			g := tree.ChildrenOf(tree.Sections[0].Node)[0]
			if tree.Node(g).Type != ir.GalleryType {
				t.Fatalf("got %s", tree.Node(g).Type)
			}
			Unnest(tree, g)
			var got []ir.Type
			for _, c := range tree.ChildrenOf(g) {
				got = append(got, tree.Node(c).Type)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnnestAllSkipsText(t *testing.T) {
	tree := Parse("plain text and ''[[x]]''\n{|\n| {{t}}\n|}")
	before := tree.Size()
	n := UnnestAll(tree)
	if n != 2 {
		t.Errorf("added %d, want link and template", n)
	}
	if tree.Size() != before+n {
		t.Errorf("size %d, want %d", tree.Size(), before+n)
	}
}

func TestSectionText(t *testing.T) {
	raw := "'''Bold''' [[Paris|the city]] and [[File:X.jpg|thumb|cap]]{{cite}}<ref>r</ref> [https://x.org site] &amp; more<!-- c -->"
	got := SectionText(raw, "en")
	if want := "Bold the city and  site & more"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := SectionText("== H ==\n* one\n* two", "en"); got != "\n one\n two" {
		t.Errorf("got %q", got)
	}
}
