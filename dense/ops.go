package dense

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/bootstraphist/errs"
)

// Add returns a + b elementwise.
func (a *Array) Add(b *Array) (*Array, error) {
	return a.binary(b, floats.AddTo)
}

// Sub returns a - b elementwise.
func (a *Array) Sub(b *Array) (*Array, error) {
	return a.binary(b, floats.SubTo)
}

// Mul returns a * b elementwise.
func (a *Array) Mul(b *Array) (*Array, error) {
	return a.binary(b, floats.MulTo)
}

// Div returns a / b elementwise. Division by zero follows IEEE-754.
func (a *Array) Div(b *Array) (*Array, error) {
	return a.binary(b, floats.DivTo)
}

func (a *Array) binary(b *Array, kernel func(dst, s, t []float64) []float64) (*Array, error) {
	if b == nil || !a.SameShape(b) {
		var other []int
		if b != nil {
			other = b.shape
		}

		return nil, fmt.Errorf("%w: %v vs %v", errs.ErrShapeMismatch, a.shape, other)
	}

	out := make([]float64, len(a.data))
	kernel(out, a.data, b.data)

	return newArray(a.shape, out), nil
}

// AddScalar returns a + c.
func (a *Array) AddScalar(c float64) *Array {
	out := a.Clone()
	floats.AddConst(c, out.data)

	return out
}

// Scale returns a * c.
func (a *Array) Scale(c float64) *Array {
	out := a.Clone()
	floats.Scale(c, out.data)

	return out
}

// Map returns a new array with f applied to every element.
func (a *Array) Map(f func(float64) float64) *Array {
	out := make([]float64, len(a.data))
	for i, v := range a.data {
		out[i] = f(v)
	}

	return newArray(a.shape, out)
}

