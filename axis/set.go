package axis

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/arloliu/bootstraphist/errs"
)

// Set is the ordered, immutable list of axes of a histogram.
type Set struct {
	axes    []Axis
	shape   []int
	strides []int
	bins    int
}

// NewSet creates a Set from axes in storage order.
//
// Returns errs.ErrNoAxes when no axis is given and errs.ErrInvalidAxis for every
// nil member (all problems are reported together).
func NewSet(axes ...Axis) (*Set, error) {
	if len(axes) == 0 {
		return nil, errs.ErrNoAxes
	}

	var err error
	for i, a := range axes {
		if a == nil {
			err = multierr.Append(err, fmt.Errorf("%w: axis %d is nil", errs.ErrInvalidAxis, i))
		}
	}
	if err != nil {
		return nil, err
	}

	s := &Set{
		axes:    append([]Axis(nil), axes...),
		shape:   make([]int, len(axes)),
		strides: make([]int, len(axes)),
	}

	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		s.shape[i] = axes[i].Extent()
		s.strides[i] = stride
		stride *= s.shape[i]
	}
	s.bins = stride

	return s, nil
}

// Len returns the number of axes.
func (s *Set) Len() int { return len(s.axes) }

// Axis returns axis i.
func (s *Set) Axis(i int) Axis { return s.axes[i] }

// Axes returns a copy of the axis list.
func (s *Set) Axes() []Axis { return append([]Axis(nil), s.axes...) }

// Shape returns the extent of every axis.
func (s *Set) Shape() []int { return append([]int(nil), s.shape...) }

// Sizes returns the inner bin count of every axis.
func (s *Set) Sizes() []int {
	sizes := make([]int, len(s.axes))
	for i, a := range s.axes {
		sizes[i] = a.Size()
	}

	return sizes
}

// Bins returns the total number of storage slots, the product of Shape.
func (s *Set) Bins() int { return s.bins }

// Offset returns the row-major flat slot of point, which must hold one
// coordinate per axis. ok is false when any coordinate is dropped.
func (s *Set) Offset(point []float64) (offset int, ok bool) {
	for i, a := range s.axes {
		slot := a.Index(point[i])
		if slot == Dropped {
			return 0, false
		}
		offset += slot * s.strides[i]
	}

	return offset, true
}

// Select returns a Set made of the axes at positions keep, in that order.
func (s *Set) Select(keep ...int) (*Set, error) {
	seen := make(map[int]struct{}, len(keep))
	axes := make([]Axis, 0, len(keep))
	for _, k := range keep {
		if k < 0 || k >= len(s.axes) {
			return nil, fmt.Errorf("%w: axis %d of %d", errs.ErrIndexOutOfRange, k, len(s.axes))
		}
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: axis %d selected twice", errs.ErrInvalidOption, k)
		}
		seen[k] = struct{}{}
		axes = append(axes, s.axes[k])
	}

	return NewSet(axes...)
}

// Equal reports whether both sets hold pairwise equal axes.
func (s *Set) Equal(other *Set) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.axes) != len(other.axes) {
		return false
	}
	for i, a := range s.axes {
		if !a.Equal(other.axes[i]) {
			return false
		}
	}

	return true
}
