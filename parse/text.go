package parse

import (
	"html"
	"strings"

	"github.com/signadot/wikidiff/ir"
	"github.com/signadot/wikidiff/wikitext"
)

// tags whose content is running text.
var textTags = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"abbr", "b", "bdi", "big", "blockquote", "center", "cite", "code", "dd",
		"del", "dfn", "div", "dl", "dt", "em", "font", "i", "ins", "kbd", "li",
		"mark", "ol", "p", "poem", "q", "s", "samp", "small", "span", "strike",
		"strong", "sub", "sup", "time", "tt", "u", "ul", "var",
	} {
		textTags[name] = struct{}{}
	}
}

// SectionText renders the readable text of a section's markup: text
// runs, link labels, list items and the content of formatting. Headings,
// templates, references, tables, comments, media and category links
// contribute nothing.
func SectionText(raw, lang string) string {
	o := newOpts([]ParseOption{Language(lang)})
	var sb strings.Builder
	o.render(&sb, raw, 0)
	return sb.String()
}

func (o *parseOpts) render(sb *strings.Builder, s string, depth int) {
	if depth > o.maxDepth {
		return
	}
	elems, err := wikitext.Parse(s, o.scanOpts()...)
	if err != nil {
		sb.WriteString(html.UnescapeString(s))
		return
	}
	for i := range elems {
		e := &elems[i]
		switch e.Kind {
		case wikitext.KText:
			sb.WriteString(html.UnescapeString(e.Raw))
		case wikitext.KList, wikitext.KFormatting:
			o.render(sb, e.Content(), depth+1)
		case wikitext.KWikilink:
			if o.linkType(e.Name) == ir.WikilinkType {
				o.render(sb, linkLabel(e.Content()), depth+1)
			}
		case wikitext.KExternalLink:
			if e.Inner == len(e.Raw) {
				// bare url
				continue
			}
			if _, label, ok := strings.Cut(e.Content(), " "); ok {
				o.render(sb, label, depth+1)
			}
		case wikitext.KTag:
			if e.Name == "br" {
				sb.WriteByte('\n')
				continue
			}
			if _, ok := textTags[e.Name]; ok {
				o.render(sb, e.Content(), depth+1)
			}
		}
	}
}

func linkLabel(content string) string {
	if i := strings.LastIndexByte(content, '|'); i >= 0 {
		return content[i+1:]
	}
	return strings.TrimPrefix(strings.TrimSpace(content), ":")
}
