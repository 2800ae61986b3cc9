package bootstrap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/bootstraphist/errs"
)

// Estimate is a scalar with its bootstrap samples: Nominal comes from replica
// 0 and Samples from replicas 1..R-1.
type Estimate struct {
	Nominal float64
	Samples []float64
}

// Std returns the sample standard deviation of Samples, the bootstrap error of
// Nominal. Fewer than two samples give NaN.
func (e Estimate) Std() float64 {
	if len(e.Samples) < 2 {
		return math.NaN()
	}

	return stat.StdDev(e.Samples, nil)
}

// Add returns e + o, nominal with nominal and sample with sample.
func (e Estimate) Add(o Estimate) (Estimate, error) {
	return e.combine(o, func(a, b float64) float64 { return a + b })
}

// Sub returns e - o.
func (e Estimate) Sub(o Estimate) (Estimate, error) {
	return e.combine(o, func(a, b float64) float64 { return a - b })
}

// Mul returns e * o.
func (e Estimate) Mul(o Estimate) (Estimate, error) {
	return e.combine(o, func(a, b float64) float64 { return a * b })
}

// Div returns e / o.
func (e Estimate) Div(o Estimate) (Estimate, error) {
	return e.combine(o, func(a, b float64) float64 { return a / b })
}

// Equal reports whether nominals and samples match, NaNs comparing equal.
func (e Estimate) Equal(o Estimate) bool {
	same := e.Nominal == o.Nominal || (math.IsNaN(e.Nominal) && math.IsNaN(o.Nominal))

	return same && len(e.Samples) == len(o.Samples) && floats.Same(e.Samples, o.Samples)
}

func (e Estimate) combine(o Estimate, op func(a, b float64) float64) (Estimate, error) {
	if len(e.Samples) != len(o.Samples) {
		return Estimate{}, fmt.Errorf("%w: %d vs %d samples", errs.ErrIncompatibleReplicas, len(e.Samples), len(o.Samples))
	}

	out := Estimate{Nominal: op(e.Nominal, o.Nominal), Samples: make([]float64, len(e.Samples))}
	for i, v := range e.Samples {
		out.Samples[i] = op(v, o.Samples[i])
	}

	return out, nil
}
