package ir

import "fmt"

// Type is the closed set of content unit types a Node may have.
type Type int

const (
	ArticleType Type = iota
	SectionType
	HeadingType
	TextType
	TemplateType
	WikilinkType
	MediaType
	CategoryType
	ExternalLinkType
	ReferenceType
	TableType
	TableElementType
	ListType
	TextFormattingType
	GalleryType
	CommentType
	OtherTagType
)

var typeNames = map[Type]string{
	ArticleType:        "Article",
	SectionType:        "Section",
	HeadingType:        "Heading",
	TextType:           "Text",
	TemplateType:       "Template",
	WikilinkType:       "Wikilink",
	MediaType:          "Media",
	CategoryType:       "Category",
	ExternalLinkType:   "ExternalLink",
	ReferenceType:      "Reference",
	TableType:          "Table",
	TableElementType:   "TableElement",
	ListType:           "List",
	TextFormattingType: "TextFormatting",
	GalleryType:        "Gallery",
	CommentType:        "Comment",
	OtherTagType:       "OtherTag",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, s := range typeNames {
		if s == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		ArticleType,
		SectionType,
		HeadingType,
		TextType,
		TemplateType,
		WikilinkType,
		MediaType,
		CategoryType,
		ExternalLinkType,
		ReferenceType,
		TableType,
		TableElementType,
		ListType,
		TextFormattingType,
		GalleryType,
		CommentType,
		OtherTagType,
	}
}

// IsSectionLike reports whether nodes of type t hash their whole subtree
// and compare by label in the differ.
func (t Type) IsSectionLike() bool {
	return t == SectionType || t == HeadingType
}

// Unnestable reports whether nodes of type t may carry typed sub-elements.
func (t Type) Unnestable() bool {
	switch t {
	case ArticleType, SectionType, TextType, CommentType, CategoryType, TableElementType:
		return false
	default:
		return true
	}
}
