// Package libdiff computes typed edit scripts between two ir Trees.
//
// # Usage
//
//	// Drop sections identical in both revisions
//	libdiff.Prune(prev, curr)
//
//	// Minimum cost remove/insert/change script
//	script, err := libdiff.Diff(ctx, prev, curr)
//	if errors.Is(err, libdiff.ErrTimeout) {
//	    // retry coarser
//	}
//
//	// Reclassify relocations
//	libdiff.DetectMoves(script)
//
// Diff is an ordered tree edit distance in the manner of Zhang and
// Shasha. Removing or inserting a node costs 1, relabeling costs 0 for
// equal nodes (see ir.Equal), 1 within a type and 10 across types, so
// that replacing a template by a link is never a change.
//
// Diff polls its context once per pair of key roots and gives up with
// ErrTimeout when it is done. A timed out diff has no partial result.
//
// # Related Packages
//
//   - github.com/signadot/wikidiff/ir - tree representation
//   - github.com/signadot/wikidiff/reconcile - section mapping and text merging
package libdiff
