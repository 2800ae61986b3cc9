package bootstrap

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/stats"
)

// Histogram is a Poisson bootstrap histogram.
type Histogram struct {
	*core
	storage *dense.Array
}

// NewHistogram creates an empty histogram over set with the given number of
// replicas, replica 0 being the nominal fill.
func NewHistogram(set *axis.Set, replicas int, opts ...Option) (*Histogram, error) {
	c, err := newCore(set, replicas, opts)
	if err != nil {
		return nil, err
	}

	return &Histogram{core: c, storage: c.zeros()}, nil
}

// FromArray rebuilds a histogram from storage previously obtained from View,
// for instance after dense.Unmarshal. The replica count is the last dimension
// of arr, whose shape must be set's extents followed by it.
func FromArray(set *axis.Set, arr *dense.Array, opts ...Option) (*Histogram, error) {
	if arr == nil || arr.NDim() == 0 {
		return nil, fmt.Errorf("%w: array has no replica axis", errs.ErrShapeMismatch)
	}

	c, err := newCore(set, arr.LaneLen(), opts)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(arr.Shape(), c.shape()) {
		return nil, fmt.Errorf("%w: array %v, axes need %v", errs.ErrShapeMismatch, arr.Shape(), c.shape())
	}

	return &Histogram{core: c, storage: arr.Clone()}, nil
}

// Fill adds a batch of observations. coords holds one coordinate slice per axis;
// slices of length 1 are broadcast to the batch length. Without weight options
// every observation has sample weight 1.
//
// All inputs are validated before storage is touched: a failed Fill leaves the
// histogram unchanged.
func (h *Histogram) Fill(coords [][]float64, opts ...FillOption) error {
	b, err := h.prepare(coords, nil, opts)
	if err != nil {
		return err
	}

	h.run("histogram", b, func(_, offset int, row []float64) {
		floats.Add(h.storage.Lane(offset), row)
	})

	return nil
}

// Axes returns the axis set.
func (h *Histogram) Axes() *axis.Set { return h.set }

// Replicas returns R, the number of replicas including the nominal.
func (h *Histogram) Replicas() int { return h.replicas }

// Shape returns the storage shape (axis extents..., R).
func (h *Histogram) Shape() []int { return h.shape() }

// View returns the full storage, flow bins included. The array is shared with
// the histogram and must not be modified.
func (h *Histogram) View() *dense.Array { return h.storage }

// Nominal returns replica 0 over all storage slots: the plain histogram.
func (h *Histogram) Nominal() *dense.Array {
	return mustTake(h.storage, 0)
}

// Bins returns the storage without flow slots, shape (axis sizes..., R).
func (h *Histogram) Bins() *dense.Array {
	return innerBins(h.set, h.storage)
}

// Equal reports whether both histograms have equal axes, replica count and
// contents.
func (h *Histogram) Equal(other *Histogram) bool {
	if other == nil {
		return false
	}

	return h.compatible(other.core) == nil && h.storage.Equal(other.storage)
}

// Mean reduces the replica axis with stats.Mean.
func (h *Histogram) Mean(sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Mean(h.storage, sel, opts...)
}

// Std reduces the replica axis with stats.Std.
func (h *Histogram) Std(sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Std(h.storage, sel, opts...)
}

// Percentile reduces the replica axis with stats.Percentile.
func (h *Histogram) Percentile(q []float64, sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Percentile(h.storage, q, sel, opts...)
}

// Project sums away every axis not listed in keep. Kept axes retain their
// relative order; the replica axis is always kept.
func (h *Histogram) Project(keep ...int) (*Histogram, error) {
	set, storage, err := project(h.set, h.storage, keep)
	if err != nil {
		return nil, err
	}

	return &Histogram{core: h.derive(set), storage: storage}, nil
}

func project(set *axis.Set, storage *dense.Array, keep []int) (*axis.Set, *dense.Array, error) {
	sorted := slices.Sorted(slices.Values(keep))

	sub, err := set.Select(sorted...)
	if err != nil {
		return nil, nil, err
	}
	summed, err := storage.SumAxes(append(sorted, set.Len())...)
	if err != nil {
		return nil, nil, err
	}

	return sub, summed, nil
}

func mustTake(a *dense.Array, replica int) *dense.Array {
	out, err := a.Take(a.NDim()-1, replica)
	if err != nil {
		panic(err)
	}

	return out
}

// innerBins crops the flow slots of every axis.
func innerBins(set *axis.Set, storage *dense.Array) *dense.Array {
	lo := make([]int, storage.NDim())
	hi := storage.Shape()
	for i, a := range set.Axes() {
		lo[i], hi[i] = axis.InnerSlots(a)
	}

	out, err := storage.Crop(lo, hi)
	if err != nil {
		panic(err)
	}

	return out
}
