// Package parse builds ir Trees from wiki markup.
//
// # Usage
//
//	// Build the tree of one revision
//	t := parse.Parse(text, parse.Language("de"))
//
//	// Expose the structure of compound nodes
//	parse.UnnestAll(t)
//
//	// Plain text of a section, for lexical comparison
//	s := parse.SectionText(t.Sections[1].Raw, "de")
//
// The root of a tree is an Article whose children are the sections of
// the revision in document order, starting with the lede. Each top-level
// markup element of a section becomes one child of the section. Compound
// elements (templates, links, tags, tables, lists) are kept opaque until
// unnested.
//
// Malformed markup never fails: constructs that do not balance are text,
// and a revision the scanner gives up on becomes a single Text node.
//
// # Related Packages
//
//   - github.com/signadot/wikidiff/wikitext - markup scanning
//   - github.com/signadot/wikidiff/ir - tree representation
//   - github.com/signadot/wikidiff/lang - namespace aliases
package parse
