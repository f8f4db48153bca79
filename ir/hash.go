package ir

import (
	"hash/maphash"
)

// seed is fixed for the life of the process so that hashes from two
// independently built trees are comparable.
var seed = maphash.MakeSeed()

// HashString returns the content hash of s. It is defined for every
// string, including the empty one.
func HashString(s string) uint64 {
	return maphash.String(seed, s)
}

// Equal reports whether a and b hold the same content: same type and,
// for section-like nodes, the same label, otherwise the same hash.
// Childless section-like nodes additionally compare hashes since
// nothing below them can account for a content difference.
func Equal(ta *Tree, a int, tb *Tree, b int) bool {
	na, nb := &ta.Nodes[a], &tb.Nodes[b]
	if na.Type != nb.Type {
		return false
	}
	if !na.Type.IsSectionLike() {
		return na.Hash == nb.Hash
	}
	if na.Label != nb.Label {
		return false
	}
	if ta.IsLeaf(a) && tb.IsLeaf(b) {
		return na.Hash == nb.Hash
	}
	return true
}
