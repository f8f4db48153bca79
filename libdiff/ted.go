package libdiff

import (
	"context"
	"fmt"

	"github.com/signadot/wikidiff/debug"
	"github.com/signadot/wikidiff/ir"
)

// op is one step of an alignment between post-order positions; -1 on a
// side means the node is absent there.
type op struct {
	i, j int
}

// trail is an operation list in rope form: concatenation is O(1) and
// trails are shared between table cells.
type trail struct {
	prefix *trail
	suffix *trail
	op     op
	hasOp  bool
}

func (t *trail) then(o op) *trail {
	return &trail{prefix: t, op: o, hasOp: true}
}

func concat(a, b *trail) *trail {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return &trail{prefix: a, suffix: b}
}

// ops flattens t into document order.
func (t *trail) ops() []op {
	type item struct {
		t    *trail
		emit bool
	}
	var res []op
	stack := []item{{t: t}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case it.t == nil:
		case it.emit:
			res = append(res, it.t.op)
		case it.t.hasOp:
			stack = append(stack, item{t: it.t, emit: true}, item{t: it.t.prefix})
		default:
			stack = append(stack, item{t: it.t.suffix}, item{t: it.t.prefix})
		}
	}
	return res
}

// postTree is a tree linearized in post-order.
type postTree struct {
	t     *ir.Tree
	nodes []int // post-order position -> arena index
	left  []int // post-order position -> leftmost leaf position
	keys  []int // key roots, ascending
}

func linearize(t *ir.Tree) *postTree {
	p := &postTree{t: t, nodes: t.PostOrder()}
	n := len(p.nodes)
	pos := make(map[int]int, n)
	for k, i := range p.nodes {
		pos[i] = k
	}
	p.left = make([]int, n)
	for k, i := range p.nodes {
		cs := t.ChildrenOf(i)
		if len(cs) == 0 {
			p.left[k] = k
			continue
		}
		p.left[k] = p.left[pos[cs[0]]]
	}
	for k, i := range p.nodes {
		if i == ir.Root {
			p.keys = append(p.keys, k)
			continue
		}
		sibs := t.ChildrenOf(t.Node(i).Parent)
		if sibs[0] != i {
			p.keys = append(p.keys, k)
		}
	}
	return p
}

type ted struct {
	o      *diffOpts
	t1, t2 *postTree
	n, m   int

	// all costs are multiplied by scale; pairing two sections with
	// different titles adds 1 so that equal cost alignments keep sections
	// with their namesakes. scale exceeds the number of such pairings.
	scale int

	// whole subtree distances and their trails, n x m
	dist   []int
	trails []*trail

	// forest distances for the current key root pair, (n+1) x (m+1)
	fd  []int
	fdt []*trail
}

// Diff computes a minimum cost edit script turning prev into curr.
// The root Article nodes are always aligned. Section entries whose node
// has children are left out; their content is accounted for by the
// children.
//
// If ctx is done before the computation finishes, Diff returns nil and
// an error wrapping both ErrTimeout and ctx.Err().
func Diff(ctx context.Context, prev, curr *ir.Tree, opts ...DiffOption) (*EditScript, error) {
	d := &ted{
		o:  newDiffOpts(opts),
		t1: linearize(prev),
		t2: linearize(curr),
	}
	d.n, d.m = len(d.t1.nodes), len(d.t2.nodes)
	d.scale = min(d.n, d.m) + 1
	d.dist = make([]int, d.n*d.m)
	d.trails = make([]*trail, d.n*d.m)
	d.fd = make([]int, (d.n+1)*(d.m+1))
	d.fdt = make([]*trail, (d.n+1)*(d.m+1))
	for _, i := range d.t1.keys {
		for _, j := range d.t2.keys {
			if err := ctx.Err(); err != nil {
				if debug.TED() {
					debug.Logf("ted: %d x %d gave up at key roots (%d, %d)\n", d.n, d.m, i, j)
				}
				return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
			}
			d.treeDist(i, j)
		}
	}
	last := (d.n-1)*d.m + d.m - 1
	res := d.extract(d.trails[last])
	res.Cost = d.dist[last] / d.scale
	if debug.TED() {
		debug.Logf("ted: %d x %d cost %d\n", d.n, d.m, res.Cost)
	}
	return res, nil
}

func (d *ted) relabel(i, j int) int {
	a, b := d.t1.nodes[i], d.t2.nodes[j]
	if ir.Equal(d.t1.t, a, d.t2.t, b) {
		return 0
	}
	na, nb := d.t1.t.Node(a), d.t2.t.Node(b)
	switch {
	case na.Type != nb.Type:
		return d.o.typeChangeCost * d.scale
	case na.Type == ir.SectionType && na.Label != nb.Label:
		return d.o.changeCost*d.scale + 1
	}
	return d.o.changeCost * d.scale
}

// treeDist fills the forest distance table for the key roots i and j,
// recording the distance of every subtree pair whose leftmost leaves are
// those of i and j.
func (d *ted) treeDist(i, j int) {
	li, lj := d.t1.left[i], d.t2.left[j]
	stride := d.m + 1
	fd, fdt := d.fd, d.fdt
	at := func(x, y int) int { return x*stride + y }

	rm, ins := RemoveCost*d.scale, InsertCost*d.scale
	fd[0] = 0
	fdt[0] = nil
	for x := 1; x <= i-li+1; x++ {
		fd[at(x, 0)] = fd[at(x-1, 0)] + rm
		fdt[at(x, 0)] = fdt[at(x-1, 0)].then(op{li + x - 1, -1})
	}
	for y := 1; y <= j-lj+1; y++ {
		fd[at(0, y)] = fd[at(0, y-1)] + ins
		fdt[at(0, y)] = fdt[at(0, y-1)].then(op{-1, lj + y - 1})
	}
	for x := 1; x <= i-li+1; x++ {
		a := li + x - 1
		for y := 1; y <= j-lj+1; y++ {
			b := lj + y - 1
			best := fd[at(x-1, y)] + rm
			bt := fdt[at(x-1, y)].then(op{a, -1})
			if c := fd[at(x, y-1)] + ins; c < best {
				best = c
				bt = fdt[at(x, y-1)].then(op{-1, b})
			}
			if d.t1.left[a] == li && d.t2.left[b] == lj {
				// both forests are whole trees
				if c := fd[at(x-1, y-1)] + d.relabel(a, b); c < best {
					best = c
					bt = fdt[at(x-1, y-1)].then(op{a, b})
				}
				fd[at(x, y)] = best
				fdt[at(x, y)] = bt
				d.dist[a*d.m+b] = best
				d.trails[a*d.m+b] = bt
				continue
			}
			px, py := d.t1.left[a]-li, d.t2.left[b]-lj
			if c := fd[at(px, py)] + d.dist[a*d.m+b]; c < best {
				best = c
				bt = concat(fdt[at(px, py)], d.trails[a*d.m+b])
			}
			fd[at(x, y)] = best
			fdt[at(x, y)] = bt
		}
	}
}

func (d *ted) extract(t *trail) *EditScript {
	p1, p2 := d.t1.t, d.t2.t
	res := &EditScript{Prev: p1, Curr: p2}
	for _, o := range t.ops() {
		a, b := -1, -1
		if o.i >= 0 {
			a = d.t1.nodes[o.i]
			if !reportable(p1, a) {
				continue
			}
		}
		if o.j >= 0 {
			b = d.t2.nodes[o.j]
			if !reportable(p2, b) {
				continue
			}
		}
		switch {
		case b < 0:
			res.Removed = append(res.Removed, a)
		case a < 0:
			res.Inserted = append(res.Inserted, b)
		case !ir.Equal(p1, a, p2, b):
			res.Changed = append(res.Changed, Pair{Prev: a, Curr: b})
		}
	}
	return res
}

// reportable excludes the root and sections still holding children.
func reportable(t *ir.Tree, i int) bool {
	n := t.Node(i)
	switch n.Type {
	case ir.ArticleType:
		return false
	case ir.SectionType:
		return t.IsLeaf(i)
	}
	return true
}
