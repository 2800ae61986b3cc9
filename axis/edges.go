package axis

import (
	"fmt"
	"slices"

	"github.com/arloliu/bootstraphist/errs"
)

// FromEdges builds the axis that matches the shape of edges: a RegularAxis when
// a regular axis over the end points reproduces every edge exactly, a
// VariableAxis otherwise. Edges are never moved.
//
// Example:
//
//	a, _ := axis.FromEdges([]float64{0, 1, 2, 3})   // *RegularAxis, 3 bins
//	b, _ := axis.FromEdges([]float64{0, 1, 10, 100}) // *VariableAxis
func FromEdges(edges []float64, opts ...Option) (Axis, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two edges, got %d", errs.ErrInvalidAxis, len(edges))
	}

	if r, err := Regular(len(edges)-1, edges[0], edges[len(edges)-1], opts...); err == nil && slices.Equal(r.Edges(), edges) {
		return r, nil
	}

	return Variable(edges, opts...)
}
