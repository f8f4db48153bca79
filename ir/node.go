package ir

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// SectionID identifies a section uniquely within one Tree.
type SectionID string

// Root is the index of the Article node in every Tree.
const Root = 0

// NoNode is the parent index of the root.
const NoNode = -1

// Node is a single content unit. Nodes live in a Tree's arena and are
// addressed by index; the Tree owns the child lists.
type Node struct {
	Name string
	Type Type

	// Raw is the verbatim source span that produced the node.
	Raw string
	// Label is what the differ compares for section-like nodes.
	Label string
	Hash  uint64

	// Offset is in runes, relative to the owning section's text.
	Offset  int
	Section SectionID
	Parent  int
}

// Section records one section of a revision in document order.
type Section struct {
	ID    SectionID
	Title string
	Level int
	Raw   string
	Node  int
}

type Tree struct {
	Nodes    []Node
	Children [][]int
	Sections []Section
	Language string
}

func NewTree(lang string) *Tree {
	t := &Tree{Language: lang}
	t.Nodes = append(t.Nodes, Node{
		Name:   "article",
		Type:   ArticleType,
		Parent: NoNode,
		Hash:   HashString(""),
	})
	t.Children = append(t.Children, nil)
	return t
}

// Add appends n as the last child of parent and returns its index.
func (t *Tree) Add(parent int, n Node) int {
	i := len(t.Nodes)
	n.Parent = parent
	t.Nodes = append(t.Nodes, n)
	t.Children = append(t.Children, nil)
	t.Children[parent] = append(t.Children[parent], i)
	return i
}

func (t *Tree) Node(i int) *Node {
	return &t.Nodes[i]
}

func (t *Tree) ChildrenOf(i int) []int {
	return t.Children[i]
}

func (t *Tree) IsLeaf(i int) bool {
	return len(t.Children[i]) == 0
}

// Clear detaches the subtree below i, leaving i itself in place.
// Detached nodes stay in the arena but are no longer reachable.
func (t *Tree) Clear(i int) {
	t.Children[i] = nil
}

// Size is the number of nodes reachable from the root.
func (t *Tree) Size() int {
	n := 0
	t.Walk(func(int, int) bool {
		n++
		return true
	})
	return n
}

// Walk visits reachable nodes in pre-order. Returning false from f
// skips the node's children.
func (t *Tree) Walk(f func(i, depth int) bool) {
	t.walk(Root, 0, f)
}

func (t *Tree) walk(i, depth int, f func(i, depth int) bool) {
	if !f(i, depth) {
		return
	}
	for _, c := range t.Children[i] {
		t.walk(c, depth+1, f)
	}
}

// PostOrder returns the arena indices of reachable nodes in post-order.
func (t *Tree) PostOrder() []int {
	res := make([]int, 0, len(t.Nodes))
	var visit func(i int)
	visit = func(i int) {
		for _, c := range t.Children[i] {
			visit(c)
		}
		res = append(res, i)
	}
	visit(Root)
	return res
}

func (t *Tree) Clone() *Tree {
	res := &Tree{
		Nodes:    slices.Clone(t.Nodes),
		Children: make([][]int, len(t.Children)),
		Sections: slices.Clone(t.Sections),
		Language: t.Language,
	}
	for i, cs := range t.Children {
		res.Children[i] = slices.Clone(cs)
	}
	return res
}

func (t *Tree) Section(id SectionID) (*Section, bool) {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

func (t *Tree) SectionIDs() []SectionID {
	res := make([]SectionID, len(t.Sections))
	for i := range t.Sections {
		res[i] = t.Sections[i].ID
	}
	return res
}

// Dump writes an indented listing of the reachable tree.
func (t *Tree) Dump(w io.Writer) error {
	var err error
	t.Walk(func(i, depth int) bool {
		if err != nil {
			return false
		}
		n := &t.Nodes[i]
		_, err = fmt.Fprintf(w, "%s%s %q section=%q offset=%d hash=%016x\n",
			strings.Repeat("  ", depth), n.Type, abbrev(n.Raw, 48), n.Section, n.Offset, n.Hash)
		return true
	})
	return err
}

func abbrev(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-3]) + "..."
}
