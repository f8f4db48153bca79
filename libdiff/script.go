package libdiff

import (
	"fmt"
	"io"

	"github.com/signadot/wikidiff/ir"
)

// Pair relates a node of the previous tree to a node of the current one,
// both by arena index.
type Pair struct {
	Prev, Curr int
}

// EditScript is the result of Diff. Node references are arena indices
// into Prev and Curr.
type EditScript struct {
	Prev, Curr *ir.Tree

	Removed  []int
	Inserted []int
	Changed  []Pair
	Moved    []Pair

	// Cost is the edit distance found by Diff.
	Cost int
}

func (s *EditScript) Empty() bool {
	return len(s.Removed)+len(s.Inserted)+len(s.Changed)+len(s.Moved) == 0
}

// Dump writes one line per entry, for debugging.
func (s *EditScript) Dump(w io.Writer) {
	for _, i := range s.Removed {
		n := s.Prev.Node(i)
		fmt.Fprintf(w, "- %s %q %s\n", n.Type, n.Raw, n.Section)
	}
	for _, i := range s.Inserted {
		n := s.Curr.Node(i)
		fmt.Fprintf(w, "+ %s %q %s\n", n.Type, n.Raw, n.Section)
	}
	for _, p := range s.Changed {
		a, b := s.Prev.Node(p.Prev), s.Curr.Node(p.Curr)
		fmt.Fprintf(w, "~ %s %q -> %s %q\n", a.Type, a.Raw, b.Type, b.Raw)
	}
	for _, p := range s.Moved {
		a, b := s.Prev.Node(p.Prev), s.Curr.Node(p.Curr)
		fmt.Fprintf(w, "> %s %q %s -> %s\n", a.Type, a.Raw, a.Section, b.Section)
	}
}
