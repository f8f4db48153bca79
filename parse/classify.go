package parse

import (
	"strings"

	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/lang"
	"github.com/signadot/wikidiff/wikitext"
)

var kindTypes = map[wikitext.Kind]ir.Type{
	wikitext.KText:         ir.TextType,
	wikitext.KHeading:      ir.HeadingType,
	wikitext.KTemplate:     ir.TemplateType,
	wikitext.KArgument:     ir.TemplateType,
	wikitext.KWikilink:     ir.WikilinkType,
	wikitext.KExternalLink: ir.ExternalLinkType,
	wikitext.KTag:          ir.OtherTagType,
	wikitext.KComment:      ir.CommentType,
	wikitext.KTable:        ir.TableType,
	wikitext.KList:         ir.ListType,
	wikitext.KFormatting:   ir.TextFormattingType,
}

var tagTypes = map[string]ir.Type{
	"ref":        ir.ReferenceType,
	"references": ir.ReferenceType,
	"gallery":    ir.GalleryType,
	"table":      ir.TableType,
	"tr":         ir.TableElementType,
	"td":         ir.TableElementType,
	"th":         ir.TableElementType,
	"caption":    ir.TableElementType,
	"ul":         ir.ListType,
	"ol":         ir.ListType,
	"li":         ir.ListType,
	"dl":         ir.ListType,
	"dt":         ir.ListType,
	"dd":         ir.ListType,
	"b":          ir.TextFormattingType,
	"i":          ir.TextFormattingType,
	"u":          ir.TextFormattingType,
	"s":          ir.TextFormattingType,
	"strike":     ir.TextFormattingType,
	"del":        ir.TextFormattingType,
	"ins":        ir.TextFormattingType,
	"em":         ir.TextFormattingType,
	"strong":     ir.TextFormattingType,
	"big":        ir.TextFormattingType,
	"small":      ir.TextFormattingType,
	"sub":        ir.TextFormattingType,
	"sup":        ir.TextFormattingType,
	"tt":         ir.TextFormattingType,
	"code":       ir.TextFormattingType,
	"mark":       ir.TextFormattingType,
}

// classify maps a scanned element to its node type. Links are split by
// namespace into media, category and plain wikilinks; tags by name.
func (o *parseOpts) classify(e *wikitext.Element) ir.Type {
	switch e.Kind {
	case wikitext.KWikilink:
		return o.linkType(e.Name)
	case wikitext.KTag:
		if t, ok := tagTypes[e.Name]; ok {
			return t
		}
		return ir.OtherTagType
	}
	return kindTypes[e.Kind]
}

func (o *parseOpts) linkType(target string) ir.Type {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, ":") {
		// [[:Category:X]] links to the category page
		return ir.WikilinkType
	}
	switch {
	case lang.HasPrefix(target, o.media):
		return ir.MediaType
	case lang.HasPrefix(target, o.category):
		return ir.CategoryType
	}
	return ir.WikilinkType
}
