package axis

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
)

// VariableAxis bins values between arbitrary strictly increasing edges.
type VariableAxis struct {
	flow
	edges []float64
}

var _ Axis = (*VariableAxis)(nil)

// Variable creates an axis whose bins are [edges[i], edges[i+1]).
//
// Returns errs.ErrInvalidAxis for fewer than two edges, non-finite edges or edges
// that are not strictly increasing. The edges slice is copied.
func Variable(edges []float64, opts ...Option) (*VariableAxis, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: variable axis needs at least two edges, got %d", errs.ErrInvalidAxis, len(edges))
	}
	for i, e := range edges {
		if !isFinite(e) {
			return nil, fmt.Errorf("%w: edge %d is not finite", errs.ErrInvalidAxis, i)
		}
		if i > 0 && e <= edges[i-1] {
			return nil, fmt.Errorf("%w: edges must be strictly increasing at index %d", errs.ErrInvalidAxis, i)
		}
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &VariableAxis{
		flow:  newFlow(cfg),
		edges: append([]float64(nil), edges...),
	}, nil
}

func (a *VariableAxis) sealed() {}

// Kind returns format.AxisVariable.
func (a *VariableAxis) Kind() format.AxisKind { return format.AxisVariable }

// Size returns the number of inner bins.
func (a *VariableAxis) Size() int { return len(a.edges) - 1 }

// Extent returns the number of storage slots.
func (a *VariableAxis) Extent() int { return a.flow.extent(a.Size()) }

// Locate returns the inner bin containing v.
func (a *VariableAxis) Locate(v float64) (int, Location) {
	n := a.Size()
	if math.IsNaN(v) {
		return n, Overflow
	}
	if v < a.edges[0] {
		return -1, Underflow
	}
	if v >= a.edges[n] {
		return n, Overflow
	}

	// first edge strictly above v closes the bin
	upper := sort.Search(len(a.edges), func(i int) bool { return a.edges[i] > v })

	return upper - 1, InRange
}

// Index returns the storage slot of v, or Dropped.
func (a *VariableAxis) Index(v float64) int {
	bin, loc := a.Locate(v)
	return a.flow.slot(a.Size(), bin, loc)
}

// Edges returns a copy of the bin edges.
func (a *VariableAxis) Edges() []float64 {
	return append([]float64(nil), a.edges...)
}

// Equal reports whether other is a VariableAxis with identical edges and flow policy.
func (a *VariableAxis) Equal(other Axis) bool {
	o, ok := other.(*VariableAxis)
	if !ok || o == nil {
		return false
	}

	return edgesEqual(a.edges, o.edges) && a.flow.equal(o.flow)
}
