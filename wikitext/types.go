package wikitext

import "fmt"

type Kind int

const (
	KText Kind = iota
	KHeading
	KTemplate
	KArgument
	KWikilink
	KExternalLink
	KTag
	KComment
	KTable
	KList
	KFormatting
)

func (k Kind) String() string {
	return map[Kind]string{
		KText:         "KText",
		KHeading:      "KHeading",
		KTemplate:     "KTemplate",
		KArgument:     "KArgument",
		KWikilink:     "KWikilink",
		KExternalLink: "KExternalLink",
		KTag:          "KTag",
		KComment:      "KComment",
		KTable:        "KTable",
		KList:         "KList",
		KFormatting:   "KFormatting",
	}[k]
}

// Element is one top-level markup construct. Elements returned by Parse
// are contiguous: concatenating their Raw fields yields the input.
type Element struct {
	Kind Kind
	// Name is the tag name (lower case), template name, link target,
	// heading title, list prefix or formatting marker.
	Name string
	Raw  string
	// Offset is the byte offset of Raw in the parsed text.
	Offset int
	// Level is the heading level or list depth.
	Level int

	// Raw[Inner:InnerEnd] is the element's content, e.g. the part of a
	// template between the braces.
	Inner, InnerEnd int
}

func (e *Element) Content() string {
	return e.Raw[e.Inner:e.InnerEnd]
}

func (e *Element) End() int {
	return e.Offset + len(e.Raw)
}

func (e *Element) String() string {
	return fmt.Sprintf("%s(%q)@%d", e.Kind, e.Raw, e.Offset)
}
