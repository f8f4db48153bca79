package wikitext

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type kr struct {
	Kind Kind
	Raw  string
}

func kinds(elems []Element) []kr {
	res := make([]kr, len(elems))
	for i := range elems {
		res[i] = kr{elems[i].Kind, elems[i].Raw}
	}
	return res
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []kr
	}{
		{
			name: "text",
			in:   "plain text.",
			want: []kr{{KText, "plain text."}},
		},
		{
			name: "heading",
			in:   "a\n== Title ==\nb",
			want: []kr{{KText, "a\n"}, {KHeading, "== Title =="}, {KText, "\nb"}},
		},
		{
			name: "not a heading",
			in:   "==\n",
			want: []kr{{KText, "==\n"}},
		},
		{
			name: "template nested",
			in:   "x {{a|{{b}}|c}} y",
			want: []kr{{KText, "x "}, {KTemplate, "{{a|{{b}}|c}}"}, {KText, " y"}},
		},
		{
			name: "argument",
			in:   "{{{1|x}}}",
			want: []kr{{KArgument, "{{{1|x}}}"}},
		},
		{
			name: "unbalanced template",
			in:   "{{a",
			want: []kr{{KText, "{{a"}},
		},
		{
			name: "wikilink",
			in:   "[[File:A.jpg|thumb|see [[B]]]].",
			want: []kr{{KWikilink, "[[File:A.jpg|thumb|see [[B]]]]"}, {KText, "."}},
		},
		{
			name: "external link",
			in:   "[https://example.org Example] and https://example.com/x.",
			want: []kr{
				{KExternalLink, "[https://example.org Example]"},
				{KText, " and "},
				{KExternalLink, "https://example.com/x"},
				{KText, "."},
			},
		},
		{
			name: "ref tags",
			in:   `a<ref name="x">b</ref><ref name="y"/>`,
			want: []kr{{KText, "a"}, {KTag, `<ref name="x">b</ref>`}, {KTag, `<ref name="y"/>`}},
		},
		{
			name: "nested div",
			in:   "<div><div>a</div></div>",
			want: []kr{{KTag, "<div><div>a</div></div>"}},
		},
		{
			name: "unknown tag",
			in:   "a <foo>b</foo>",
			want: []kr{{KText, "a <foo>b</foo>"}},
		},
		{
			name: "comment",
			in:   "a<!-- b -->c",
			want: []kr{{KText, "a"}, {KComment, "<!-- b -->"}, {KText, "c"}},
		},
		{
			name: "formatting",
			in:   "a ''b'' '''c''' d",
			want: []kr{
				{KText, "a "},
				{KFormatting, "''b''"},
				{KText, " "},
				{KFormatting, "'''c'''"},
				{KText, " d"},
			},
		},
		{
			name: "list",
			in:   "* one {{t|\n}}\n* two",
			want: []kr{{KList, "* one {{t|\n}}"}, {KText, "\n"}, {KList, "* two"}},
		},
		{
			name: "external link across lines",
			in:   "[http://x\n[http://y z]",
			want: []kr{
				{KText, "["},
				{KExternalLink, "http://x"},
				{KText, "\n"},
				{KExternalLink, "[http://y z]"},
			},
		},
		{
			name: "unclosed ref before ref",
			in:   "<ref>a <ref>b</ref>",
			want: []kr{{KText, "<ref>a "}, {KTag, "<ref>b</ref>"}},
		},
		{
			name: "unclosed templates around template",
			in:   "{{a {{b}} {{c",
			want: []kr{{KText, "{{a "}, {KTemplate, "{{b}}"}, {KText, " {{c"}},
		},
		{
			name: "unclosed links around link",
			in:   "[[a [[b]] [[c",
			want: []kr{{KText, "[[a "}, {KWikilink, "[[b]]"}, {KText, " [[c"}},
		},
		{
			name: "table",
			in:   "{|\n| a\n{|\n| b\n|}\n|}\nafter",
			want: []kr{{KTable, "{|\n| a\n{|\n| b\n|}\n|}"}, {KText, "\nafter"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, err := Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, kinds(elems)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			var sb strings.Builder
			for i := range elems {
				sb.WriteString(elems[i].Raw)
			}
			if sb.String() != tt.in {
				t.Errorf("elements do not cover input: %q", sb.String())
			}
		})
	}
}

func TestParseUnclosedRepeated(t *testing.T) {
	for _, unit := range []string{"[http://x ", "[https://y\n", "<ref>a ", "<div "} {
		in := strings.Repeat(unit, 20000)
		start := time.Now()
		elems, err := Parse(in)
		if err != nil {
			t.Fatalf("%q: %v", unit, err)
		}
		if d := time.Since(start); d > 2*time.Second {
			t.Errorf("%q: took %s", unit, d)
		}
		n := 0
		for i := range elems {
			n += len(elems[i].Raw)
		}
		if n != len(in) {
			t.Errorf("%q: elements cover %d of %d bytes", unit, n, len(in))
		}
	}
}

func TestElementNames(t *testing.T) {
	elems, err := Parse("== History ==\n{{Infobox city | name = X}}[[Paris|the city]]")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for i := range elems {
		if elems[i].Kind == KText {
			continue
		}
		names = append(names, elems[i].Name)
	}
	want := []string{"History", "Infobox city", "Paris"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := elems[0].Level; got != 2 {
		t.Errorf("heading level %d", got)
	}
}

func TestNestingDepth(t *testing.T) {
	in := strings.Repeat("{{a|", 10) + strings.Repeat("}}", 10)
	if _, err := Parse(in, MaxDepth(20)); err != nil {
		t.Fatal(err)
	}
	_, err := Parse(in, MaxDepth(5))
	if !errors.Is(err, ErrNestingDepth) {
		t.Fatalf("got %v, want ErrNestingDepth", err)
	}
	var perr *ParseErr
	if !errors.As(err, &perr) || perr.Offset == 0 {
		t.Errorf("expected offset in %v", err)
	}
}

func TestSplitSections(t *testing.T) {
	src := "Lede.\n== A ==\nalpha\n=== A1 ===\nbeta\n== B ==\n"
	elems, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	secs := SplitSections(src, elems)
	type sec struct {
		Title string
		Level int
		Raw   string
	}
	var got []sec
	for _, s := range secs {
		got = append(got, sec{s.Title, s.Level, s.Raw})
	}
	want := []sec{
		{"", 0, "Lede.\n"},
		{"A", 2, "== A ==\nalpha\n"},
		{"A1", 3, "=== A1 ===\nbeta\n"},
		{"B", 2, "== B ==\n"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseGallery(t *testing.T) {
	items, err := ParseGallery("\nFile:A.jpg|Caption A\n<!-- skip -->\n  B.png\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []GalleryItem{
		{File: "File:A.jpg", Caption: "Caption A", Offset: 1, CaptionOffset: 12},
		{File: "B.png", Offset: 38},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ParseGallery("not media|x"); !errors.Is(err, ErrMalformedGallery) {
		t.Errorf("got %v, want ErrMalformedGallery", err)
	}
}

func TestMedia(t *testing.T) {
	if !IsMediaName("File:Foo bar.JPG") || !IsMediaName("Foo.svg") {
		t.Error("expected media names")
	}
	if IsMediaName("Foo.txt") || IsMediaName("[[Foo.jpg]]") {
		t.Error("unexpected media names")
	}
	s := "| image = Skyline.jpg\n| map = Map of X.png"
	var got []string
	for _, sp := range FindMediaRefs(s) {
		got = append(got, s[sp[0]:sp[1]])
	}
	if diff := cmp.Diff([]string{"Skyline.jpg", "Map of X.png"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
