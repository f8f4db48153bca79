// Package wikidiff computes typed differences between two revisions of a
// wiki page.
//
// # Usage
//
//	tool := wikidiff.DefaultTool()
//	res, err := tool.Diff(ctx, prev, curr)
//	if err != nil {
//	    return err
//	}
//	for _, e := range res.Edits {
//	    fmt.Println(e.Type, e.Action)
//	}
//	fmt.Println(res.Counts["Template"]["change"])
//
// Each revision is parsed into a tree of typed content units grouped by
// section (see package parse). Sections identical in both revisions are
// pruned, the remaining trees are diffed with a tree edit distance (see
// package libdiff), relocated content is reported as moves, and text
// differences are compared per section and counted in words, sentences,
// paragraphs and punctuation (see packages reconcile and aggregate).
//
// # Time Budget
//
// Config.Timeout bounds a diff. When the budget runs out Diff returns a
// coarser Result rather than an error: first one between whole
// sections, then one with no entries at all. Result.Granularity and
// Result.Complete say which.
//
// # Configuration
//
// Config carries json and yaml tags and can be layered with JSON merge
// patches, see Config.Patch.
//
// # Related Packages
//
//   - github.com/signadot/wikidiff/parse - trees from markup
//   - github.com/signadot/wikidiff/libdiff - tree edit distance
//   - github.com/signadot/wikidiff/encode - rendering results
package wikidiff
