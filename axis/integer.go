package axis

import (
	"fmt"
	"math"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
)

// IntegerAxis has one unit-width bin per integer in [lo, hi).
// Non-integral coordinates are floored.
type IntegerAxis struct {
	flow
	lo, hi int
}

var _ Axis = (*IntegerAxis)(nil)

// Integer creates an axis with one bin per integer in [lo, hi).
func Integer(lo, hi int, opts ...Option) (*IntegerAxis, error) {
	if lo >= hi {
		return nil, fmt.Errorf("%w: integer axis range [%d, %d) is empty", errs.ErrInvalidAxis, lo, hi)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &IntegerAxis{flow: newFlow(cfg), lo: lo, hi: hi}, nil
}

func (a *IntegerAxis) sealed() {}

// Kind returns format.AxisInteger.
func (a *IntegerAxis) Kind() format.AxisKind { return format.AxisInteger }

// Size returns hi - lo.
func (a *IntegerAxis) Size() int { return a.hi - a.lo }

// Extent returns the number of storage slots.
func (a *IntegerAxis) Extent() int { return a.flow.extent(a.Size()) }

// Range returns the integer bounds.
func (a *IntegerAxis) Range() (lo, hi int) { return a.lo, a.hi }

// Locate returns the bin of floor(v).
func (a *IntegerAxis) Locate(v float64) (int, Location) {
	n := a.Size()
	if math.IsNaN(v) {
		return n, Overflow
	}

	f := math.Floor(v)
	if f < float64(a.lo) {
		return -1, Underflow
	}
	if f >= float64(a.hi) {
		return n, Overflow
	}

	return int(f) - a.lo, InRange
}

// Index returns the storage slot of v, or Dropped.
func (a *IntegerAxis) Index(v float64) int {
	bin, loc := a.Locate(v)
	return a.flow.slot(a.Size(), bin, loc)
}

// Edges returns lo, lo+1, ..., hi.
func (a *IntegerAxis) Edges() []float64 {
	edges := make([]float64, 0, a.Size()+1)
	for i := a.lo; i <= a.hi; i++ {
		edges = append(edges, float64(i))
	}

	return edges
}

// Equal reports whether other is an IntegerAxis over the same range and flow policy.
func (a *IntegerAxis) Equal(other Axis) bool {
	o, ok := other.(*IntegerAxis)
	if !ok || o == nil {
		return false
	}

	return a.lo == o.lo && a.hi == o.hi && a.flow.equal(o.flow)
}
