package libdiff

import (
	"slices"

	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
)

// Prune clears the children of every Section or Heading of prev whose
// content hash equals that of a node of the same type in curr, and of
// the matching node. Only nodes with children take part. Matching is
// greedy: each node of curr matches at most once, the first in document
// order wins. Prune returns the number of matched pairs.
//
// Pruning never hides a content difference: matched nodes hash their
// whole content.
func Prune(prev, curr *ir.Tree) int {
	cands := sectionLike(curr)
	used := make([]bool, len(cands))
	matched := 0
	for _, a := range sectionLike(prev) {
		if !attached(prev, a) {
			continue
		}
		na := prev.Node(a)
		for k, b := range cands {
			if used[k] || !attached(curr, b) {
				continue
			}
			nb := curr.Node(b)
			if na.Type != nb.Type || na.Hash != nb.Hash {
				continue
			}
			used[k] = true
			prev.Clear(a)
			curr.Clear(b)
			matched++
			if debug.Prune() {
				debug.Logf("prune: %s %s = %s\n", na.Type, prev.Path(a), curr.Path(b))
			}
			break
		}
	}
	return matched
}

// Collapse clears the children of every section, leaving a tree of
// sections only.
func Collapse(t *ir.Tree) {
	for _, s := range t.ChildrenOf(ir.Root) {
		t.Clear(s)
	}
}

func sectionLike(t *ir.Tree) []int {
	var res []int
	t.Walk(func(i, _ int) bool {
		if t.Node(i).Type.IsSectionLike() && !t.IsLeaf(i) {
			res = append(res, i)
		}
		return true
	})
	return res
}

// attached reports whether i is still reachable from the root.
func attached(t *ir.Tree, i int) bool {
	for i != ir.Root {
		p := t.Node(i).Parent
		if !slices.Contains(t.ChildrenOf(p), i) {
			return false
		}
		i = p
	}
	return true
}
