package libdiff

const (
	RemoveCost     = 1
	InsertCost     = 1
	ChangeCost     = 1
	TypeChangeCost = 10
)

type diffOpts struct {
	changeCost     int
	typeChangeCost int
}

type DiffOption func(*diffOpts)

// WithChangeCost sets the cost of relabeling a node to a different node
// of the same type.
func WithChangeCost(c int) DiffOption {
	return func(o *diffOpts) { o.changeCost = c }
}

// WithTypeChangeCost sets the cost of relabeling a node to a node of a
// different type. It should exceed RemoveCost+InsertCost for cross type
// changes never to be chosen.
func WithTypeChangeCost(c int) DiffOption {
	return func(o *diffOpts) { o.typeChangeCost = c }
}

func newDiffOpts(opts []DiffOption) *diffOpts {
	o := &diffOpts{changeCost: ChangeCost, typeChangeCost: TypeChangeCost}
	for _, f := range opts {
		f(o)
	}
	return o
}
