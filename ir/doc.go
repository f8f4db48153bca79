// Package ir provides the tree representation of one wiki document revision.
//
// # Overview
//
// A revision is represented as an ordered tree of typed content nodes. The
// root is an Article node whose children are Section nodes in document
// order; each section holds the top-level content units (headings, text
// runs, templates, links, tags...) that make it up. Compound units may be
// unnested, exposing their typed sub-elements as children.
//
// # Arena
//
// Nodes are stored in a Tree's arena and addressed by dense integer index.
// Child lists are kept separately in Tree.Children, so detaching a subtree
// is truncating a slice:
//
//	t := ir.NewTree("en")
//	s := t.Add(ir.Root, ir.Node{Type: ir.SectionType, Label: "History"})
//	t.Add(s, ir.Node{Type: ir.TextType, Raw: "Some text."})
//	t.Clear(s) // s is now a leaf
//
// # Hashing
//
// Every node carries a content hash used as an O(1) equality proxy. Most
// nodes hash their raw text. Section and Heading nodes hash their whole
// subtree's content while the differ compares them by Label, see [Equal].
//
// # Related Packages
//
//   - github.com/signadot/wikidiff/parse - builds Trees from markup
//   - github.com/signadot/wikidiff/libdiff - diffs Trees
package ir
