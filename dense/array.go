package dense

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/bootstraphist/errs"
)

// Array is a dense row-major N-dimensional array of float64.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// Zeros creates a zero-filled array. Every dimension must be at least 1.
// An empty shape creates a zero-dimensional array holding one element.
func Zeros(shape ...int) (*Array, error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}

	return newArray(shape, make([]float64, n)), nil
}

// FromSlice creates an array of the given shape holding a copy of data.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", errs.ErrInvalidShape, shape, n, len(data))
	}

	return newArray(shape, slices.Clone(data)), nil
}

func volume(shape []int) (int, error) {
	n := 1
	for i, d := range shape {
		if d < 1 {
			return 0, fmt.Errorf("%w: dimension %d has size %d", errs.ErrInvalidShape, i, d)
		}
		if n > math.MaxInt/d {
			return 0, fmt.Errorf("%w: shape %v overflows", errs.ErrInvalidShape, shape)
		}
		n *= d
	}

	return n, nil
}

// newArray takes ownership of data.
func newArray(shape []int, data []float64) *Array {
	a := &Array{
		shape:   slices.Clone(shape),
		strides: make([]int, len(shape)),
		data:    data,
	}

	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		a.strides[i] = stride
		stride *= shape[i]
	}

	return a
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// Offset returns the flat index of idx, panicking when idx is out of range.
func (a *Array) Offset(idx ...int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("dense: %d indices for %d-dimensional array", len(idx), len(a.shape)))
	}

	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("dense: index %d out of range [0, %d) on axis %d", v, a.shape[i], i))
		}
		off += v * a.strides[i]
	}

	return off
}

// At returns the element at idx.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.Offset(idx...)]
}

// Set stores v at idx.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.Offset(idx...)] = v
}

// Values returns a copy of all elements in row-major order.
func (a *Array) Values() []float64 {
	return slices.Clone(a.data)
}

// LaneLen returns the length of the last axis (1 for a zero-dimensional array).
func (a *Array) LaneLen() int {
	if len(a.shape) == 0 {
		return 1
	}

	return a.shape[len(a.shape)-1]
}

// NumLanes returns the number of last-axis lanes.
func (a *Array) NumLanes() int {
	return len(a.data) / a.LaneLen()
}

// Lane returns lane i, the contiguous last-axis run at flat position i over the
// leading axes. The slice aliases the array storage.
func (a *Array) Lane(i int) []float64 {
	n := a.LaneLen()
	return a.data[i*n : (i+1)*n : (i+1)*n]
}

// Lanes iterates over all last-axis lanes in row-major order.
// The yielded slices alias the array storage.
func (a *Array) Lanes() iter.Seq2[int, []float64] {
	return func(yield func(int, []float64) bool) {
		for i := range a.NumLanes() {
			if !yield(i, a.Lane(i)) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return newArray(a.shape, slices.Clone(a.data))
}

// SameShape reports whether a and b have identical dimensions.
func (a *Array) SameShape(b *Array) bool {
	return slices.Equal(a.shape, b.shape)
}

// Equal reports whether a and b have the same shape and elements, treating NaNs
// in matching positions as equal.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.SameShape(b) && floats.Same(a.data, b.data)
}

// String returns a short description of the array.
func (a *Array) String() string {
	return fmt.Sprintf("dense.Array{shape: %v}", a.shape)
}
