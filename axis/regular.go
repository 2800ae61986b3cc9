package axis

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
)

// RegularAxis bins [lo, hi) into n equal-width half-open intervals.
type RegularAxis struct {
	flow
	n      int
	lo, hi float64
	width  float64
}

var _ Axis = (*RegularAxis)(nil)

// Regular creates an axis of n equal-width bins spanning [lo, hi).
//
// Returns errs.ErrInvalidAxis if n < 1 or the range is empty or not finite.
func Regular(n int, lo, hi float64, opts ...Option) (*RegularAxis, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: regular axis needs at least one bin, got %d", errs.ErrInvalidAxis, n)
	}
	if !isFinite(lo) || !isFinite(hi) || lo >= hi {
		return nil, fmt.Errorf("%w: regular axis range [%g, %g) is empty or not finite", errs.ErrInvalidAxis, lo, hi)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &RegularAxis{
		flow:  newFlow(cfg),
		n:     n,
		lo:    lo,
		hi:    hi,
		width: hi - lo,
	}, nil
}

func (a *RegularAxis) sealed() {}

// Kind returns format.AxisRegular.
func (a *RegularAxis) Kind() format.AxisKind { return format.AxisRegular }

// Size returns the number of inner bins.
func (a *RegularAxis) Size() int { return a.n }

// Extent returns the number of storage slots.
func (a *RegularAxis) Extent() int { return a.flow.extent(a.n) }

// Range returns the axis bounds.
func (a *RegularAxis) Range() (lo, hi float64) { return a.lo, a.hi }

// Locate returns the inner bin containing v.
func (a *RegularAxis) Locate(v float64) (int, Location) {
	if math.IsNaN(v) {
		return a.n, Overflow
	}

	z := (v - a.lo) / a.width
	if z < 0 {
		return -1, Underflow
	}
	if z >= 1 {
		return a.n, Overflow
	}

	// z*n may round up to n for values just below hi
	return min(int(z*float64(a.n)), a.n-1), InRange
}

// Index returns the storage slot of v, or Dropped.
func (a *RegularAxis) Index(v float64) int {
	bin, loc := a.Locate(v)
	return a.flow.slot(a.n, bin, loc)
}

// Edges returns the n+1 bin edges.
func (a *RegularAxis) Edges() []float64 {
	edges := make([]float64, a.n+1)
	for i := range a.n {
		edges[i] = a.lo + a.width*float64(i)/float64(a.n)
	}
	edges[a.n] = a.hi

	return edges
}

// Equal reports whether other is a RegularAxis with the same bins and flow policy.
func (a *RegularAxis) Equal(other Axis) bool {
	o, ok := other.(*RegularAxis)
	if !ok || o == nil {
		return false
	}

	return a.n == o.n && a.lo == o.lo && a.hi == o.hi && a.flow.equal(o.flow)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func edgesEqual(a, b []float64) bool {
	return slices.Equal(a, b)
}
