package libdiff

import (
	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
)

type moveKey struct {
	typ  ir.Type
	hash uint64
}

// candidate is a node of a move pool; pair is the index of the change it
// is a side of, or -1.
type candidate struct {
	node int
	pair int
}

// DetectMoves reclassifies entries of s that relocate identical content
// as moves. A removed node or the previous side of a change matches an
// inserted node or the current side of a change with the same type and
// hash, one to one, first match in script order. When only one side of a
// change moved, the other side becomes a plain insert or remove. Two
// sides of the same change never match each other.
//
// When several nodes share a hash the pairing follows encounter order,
// which is stable but arbitrary.
func DetectMoves(s *EditScript) {
	var prevPool, currPool []candidate
	for _, i := range s.Removed {
		prevPool = append(prevPool, candidate{i, -1})
	}
	for k, p := range s.Changed {
		prevPool = append(prevPool, candidate{p.Prev, k})
	}
	for _, i := range s.Inserted {
		currPool = append(currPool, candidate{i, -1})
	}
	for k, p := range s.Changed {
		currPool = append(currPool, candidate{p.Curr, k})
	}

	byKey := map[moveKey][]int{}
	for k, c := range currPool {
		n := s.Curr.Node(c.node)
		key := moveKey{n.Type, n.Hash}
		byKey[key] = append(byKey[key], k)
	}
	currUsed := make([]bool, len(currPool))
	prevMoved := make(map[int]bool)
	currMoved := make(map[int]bool)
	var moved []Pair
	for _, pc := range prevPool {
		n := s.Prev.Node(pc.node)
		key := moveKey{n.Type, n.Hash}
		for _, k := range byKey[key] {
			cc := currPool[k]
			if currUsed[k] || (pc.pair >= 0 && pc.pair == cc.pair) {
				continue
			}
			currUsed[k] = true
			prevMoved[pc.node] = true
			currMoved[cc.node] = true
			moved = append(moved, Pair{Prev: pc.node, Curr: cc.node})
			if debug.Moves() {
				debug.Logf("move: %s %q %s -> %s\n", n.Type, n.Raw, s.Prev.Path(pc.node), s.Curr.Path(cc.node))
			}
			break
		}
	}
	if len(moved) == 0 {
		return
	}

	var removed, inserted []int
	for _, i := range s.Removed {
		if !prevMoved[i] {
			removed = append(removed, i)
		}
	}
	for _, i := range s.Inserted {
		if !currMoved[i] {
			inserted = append(inserted, i)
		}
	}
	var changed []Pair
	for _, p := range s.Changed {
		pm, cm := prevMoved[p.Prev], currMoved[p.Curr]
		switch {
		case pm && cm:
		case pm:
			inserted = append(inserted, p.Curr)
		case cm:
			removed = append(removed, p.Prev)
		default:
			changed = append(changed, p)
		}
	}
	s.Removed, s.Inserted, s.Changed = removed, inserted, changed
	s.Moved = append(s.Moved, moved...)
}
