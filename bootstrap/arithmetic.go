package bootstrap

import (
	"fmt"

	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
)

// Add returns h + other. Both operands must share axes and replica count.
// Replica r of the result is the sum of replica r of the operands, so the
// result's nominal is the sum of the nominals.
func (h *Histogram) Add(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*dense.Array).Add)
}

// Sub returns h - other.
func (h *Histogram) Sub(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*dense.Array).Sub)
}

// Mul returns h * other, bin by bin and replica by replica.
func (h *Histogram) Mul(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*dense.Array).Mul)
}

// Div returns h / other. Empty bins divide per IEEE-754.
func (h *Histogram) Div(other *Histogram) (*Histogram, error) {
	return h.combine(other, (*dense.Array).Div)
}

// AddScalar returns h + c.
func (h *Histogram) AddScalar(c float64) *Histogram {
	return h.with(h.storage.AddScalar(c))
}

// SubScalar returns h - c.
func (h *Histogram) SubScalar(c float64) *Histogram {
	return h.with(h.storage.AddScalar(-c))
}

// Scale returns h * c.
func (h *Histogram) Scale(c float64) *Histogram {
	return h.with(h.storage.Scale(c))
}

// DivScalar returns h / c.
func (h *Histogram) DivScalar(c float64) *Histogram {
	return h.with(h.storage.Map(func(v float64) float64 { return v / c }))
}

func (h *Histogram) combine(other *Histogram, op func(a, b *dense.Array) (*dense.Array, error)) (*Histogram, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", errs.ErrIncompatibleAxes)
	}
	if err := h.compatible(other.core); err != nil {
		return nil, err
	}

	out, err := op(h.storage, other.storage)
	if err != nil {
		return nil, err
	}

	return h.with(out), nil
}

func (h *Histogram) with(storage *dense.Array) *Histogram {
	return &Histogram{core: h.derive(h.set), storage: storage}
}
