package parse

import (
	"github.com/signadot/wikidiff/lang"
	"github.com/signadot/wikidiff/wikitext"
)

type parseOpts struct {
	lang     string
	maxDepth int

	media, category []string
}

type ParseOption func(*parseOpts)

// Language sets the language used to recognize media and category
// links. The default is English.
func Language(l string) ParseOption {
	return func(o *parseOpts) { o.lang = l }
}

// MaxDepth bounds markup nesting, see wikitext.MaxDepth.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{lang: lang.Default, maxDepth: wikitext.DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	o.lang = lang.Normalize(o.lang)
	o.media = lang.MediaPrefixes(o.lang)
	o.category = lang.CategoryPrefixes(o.lang)
	return o
}

func (o *parseOpts) scanOpts() []wikitext.ParseOption {
	return []wikitext.ParseOption{wikitext.MaxDepth(o.maxDepth)}
}
