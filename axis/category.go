package axis

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
	"github.com/arloliu/bootstraphist/internal/collision"
	"github.com/arloliu/bootstraphist/internal/hash"
)

// CategoryAxis has one bin per label. Fill coordinates are category codes: the
// zero-based label position as a float64, obtained with Code or Codes.
//
// Category axes never have an underflow slot; unknown codes go to overflow.
type CategoryAxis struct {
	flow
	tracker *collision.Tracker
}

var _ Axis = (*CategoryAxis)(nil)

// Category creates an axis over labels. WithUnderflow is ignored.
//
// Returns errs.ErrInvalidAxis for an empty label list, errs.ErrDuplicateCategory
// for repeated labels and errs.ErrCategoryCollision if two labels share an
// xxHash64 digest.
func Category(labels []string, opts ...Option) (*CategoryAxis, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: category axis needs at least one label", errs.ErrInvalidAxis)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.underflow = false

	tracker := collision.NewTracker(len(labels))
	for _, label := range labels {
		if _, err := tracker.Track(label, hash.ID(label)); err != nil {
			return nil, err
		}
	}

	return &CategoryAxis{flow: newFlow(cfg), tracker: tracker}, nil
}

func (a *CategoryAxis) sealed() {}

// Kind returns format.AxisCategory.
func (a *CategoryAxis) Kind() format.AxisKind { return format.AxisCategory }

// Size returns the number of labels.
func (a *CategoryAxis) Size() int { return a.tracker.Count() }

// Extent returns the number of storage slots.
func (a *CategoryAxis) Extent() int { return a.flow.extent(a.Size()) }

// Labels returns a copy of the labels in bin order.
func (a *CategoryAxis) Labels() []string {
	return slices.Clone(a.tracker.Labels())
}

// Code returns the fill coordinate of label, or NaN for an unknown label.
func (a *CategoryAxis) Code(label string) float64 {
	pos, ok := a.tracker.Lookup(hash.ID(label))
	if !ok || a.tracker.Labels()[pos] != label {
		return math.NaN()
	}

	return float64(pos)
}

// Codes maps labels to fill coordinates.
func (a *CategoryAxis) Codes(labels []string) []float64 {
	codes := make([]float64, len(labels))
	for i, label := range labels {
		codes[i] = a.Code(label)
	}

	return codes
}

// Locate returns the bin of code v. Non-integral or unknown codes overflow.
func (a *CategoryAxis) Locate(v float64) (int, Location) {
	n := a.Size()
	if math.IsNaN(v) || v < 0 || v >= float64(n) || v != math.Trunc(v) {
		return n, Overflow
	}

	return int(v), InRange
}

// Index returns the storage slot of v, or Dropped.
func (a *CategoryAxis) Index(v float64) int {
	bin, loc := a.Locate(v)
	return a.flow.slot(a.Size(), bin, loc)
}

// Edges returns 0, 1, ..., Size() so plotting code can treat categories as unit bins.
func (a *CategoryAxis) Edges() []float64 {
	edges := make([]float64, a.Size()+1)
	for i := range edges {
		edges[i] = float64(i)
	}

	return edges
}

// Equal reports whether other is a CategoryAxis with the same labels in the same order.
func (a *CategoryAxis) Equal(other Axis) bool {
	o, ok := other.(*CategoryAxis)
	if !ok || o == nil {
		return false
	}

	return slices.Equal(a.tracker.Labels(), o.tracker.Labels()) && a.flow.equal(o.flow)
}
