package wikitext

// tags the scanner recognizes; anything else starting with '<' is text.
var knownTags = map[string]struct{}{}

// tags whose content is not markup.
var opaqueTags = map[string]struct{}{}

// tags that never have a closing tag.
var voidTags = map[string]struct{}{}

// tags whose closing tag may be omitted.
var autoCloseTags = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"abbr", "b", "bdi", "big", "blockquote", "br", "caption", "categorytree",
		"center", "chem", "cite", "code", "data", "dd", "del", "dfn", "div", "dl",
		"dt", "em", "font", "gallery", "graph", "h1", "h2", "h3", "h4", "h5", "h6",
		"hiero", "hr", "i", "imagemap", "includeonly", "inputbox", "ins", "kbd", "li",
		"mapframe", "maplink", "mark", "math", "noinclude", "nowiki", "ol",
		"onlyinclude", "p", "poem", "pre", "q", "rb", "ref", "references", "rp", "rt",
		"ruby", "s", "samp", "score", "section", "small", "source", "span", "strike",
		"strong", "sub", "sup", "syntaxhighlight", "table", "td", "templatedata",
		"templatestyles", "th", "time", "timeline", "tr", "tt", "u", "ul", "var", "wbr",
	} {
		knownTags[name] = struct{}{}
	}
	for _, name := range []string{
		"chem", "graph", "hiero", "imagemap", "mapframe", "maplink", "math",
		"nowiki", "pre", "score", "source", "syntaxhighlight", "templatedata",
		"templatestyles", "timeline",
	} {
		opaqueTags[name] = struct{}{}
	}
	for _, name := range []string{"br", "hr", "wbr"} {
		voidTags[name] = struct{}{}
	}
	for _, name := range []string{"li", "p", "td", "th", "tr", "dt", "dd", "references"} {
		autoCloseTags[name] = struct{}{}
	}
}

// IsOpaqueTag reports whether the content of tag name is not markup.
func IsOpaqueTag(name string) bool {
	_, ok := opaqueTags[name]
	return ok
}
