package dense

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/bootstraphist/errs"
)

// ReduceLanes collapses the last axis by applying f to every lane. The result
// has the leading dimensions of a.
func (a *Array) ReduceLanes(f func(lane []float64) float64) *Array {
	var lead []int
	if len(a.shape) > 0 {
		lead = a.shape[:len(a.shape)-1]
	}

	out := make([]float64, a.NumLanes())
	for i, lane := range a.Lanes() {
		out[i] = f(lane)
	}

	return newArray(lead, out)
}

// Take selects index along axis, dropping that axis from the result.
func (a *Array) Take(axis, index int) (*Array, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d of %d", errs.ErrIndexOutOfRange, axis, len(a.shape))
	}
	if index < 0 || index >= a.shape[axis] {
		return nil, fmt.Errorf("%w: index %d on axis %d of size %d", errs.ErrIndexOutOfRange, index, axis, a.shape[axis])
	}

	outer := 1
	for _, d := range a.shape[:axis] {
		outer *= d
	}
	inner := a.strides[axis]
	span := a.shape[axis] * inner

	out := make([]float64, 0, outer*inner)
	for o := range outer {
		base := o*span + index*inner
		out = append(out, a.data[base:base+inner]...)
	}

	return newArray(slices.Delete(slices.Clone(a.shape), axis, axis+1), out), nil
}

// SumAxes sums over every axis not listed in keep. Kept axes appear in the
// result in ascending order.
func (a *Array) SumAxes(keep ...int) (*Array, error) {
	kept := make([]bool, len(a.shape))
	for _, k := range keep {
		if k < 0 || k >= len(a.shape) {
			return nil, fmt.Errorf("%w: axis %d of %d", errs.ErrIndexOutOfRange, k, len(a.shape))
		}
		if kept[k] {
			return nil, fmt.Errorf("%w: axis %d kept twice", errs.ErrInvalidOption, k)
		}
		kept[k] = true
	}

	var outShape []int
	for i, d := range a.shape {
		if kept[i] {
			outShape = append(outShape, d)
		}
	}
	out := newArray(outShape, make([]float64, volumeOf(outShape)))

	// Output stride for every source axis; summed axes contribute nothing.
	step := make([]int, len(a.shape))
	j := len(outShape) - 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		if kept[i] {
			step[i] = out.strides[j]
			j--
		}
	}

	idx := make([]int, len(a.shape))
	for _, v := range a.data {
		dst := 0
		for i, x := range idx {
			dst += x * step[i]
		}
		out.data[dst] += v
		increment(idx, a.shape)
	}

	return out, nil
}

// Crop keeps the half-open index window [lo[i], hi[i]) of every axis.
func (a *Array) Crop(lo, hi []int) (*Array, error) {
	if len(lo) != len(a.shape) || len(hi) != len(a.shape) {
		return nil, fmt.Errorf("%w: crop bounds for %d axes", errs.ErrDimensionMismatch, len(a.shape))
	}

	outShape := make([]int, len(a.shape))
	for i, d := range a.shape {
		if lo[i] < 0 || hi[i] > d || lo[i] >= hi[i] {
			return nil, fmt.Errorf("%w: crop [%d, %d) on axis %d of size %d", errs.ErrIndexOutOfRange, lo[i], hi[i], i, d)
		}
		outShape[i] = hi[i] - lo[i]
	}

	if len(a.shape) == 0 {
		return a.Clone(), nil
	}

	// Copy contiguous runs along the last axis.
	last := len(a.shape) - 1
	run := outShape[last]
	out := make([]float64, 0, volumeOf(outShape))
	idx := make([]int, last)
	for range volumeOf(outShape[:last]) {
		off := lo[last]
		for i, x := range idx {
			off += (x + lo[i]) * a.strides[i]
		}
		out = append(out, a.data[off:off+run]...)
		increment(idx, outShape[:last])
	}

	return newArray(outShape, out), nil
}

// Sum returns the sum of all elements.
func (a *Array) Sum() float64 {
	return floats.Sum(a.data)
}

func volumeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

// increment advances a row-major multi-index by one.
func increment(idx, shape []int) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}
