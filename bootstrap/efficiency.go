package bootstrap

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/stats"
)

// Efficiency estimates a pass fraction per bin. Every observation enters the
// denominator; passing observations also enter the numerator with the very same
// replica weights, so each replica ratio is a proper resample of the fraction.
type Efficiency struct {
	*core
	numerator   *Histogram
	denominator *Histogram
}

// NewEfficiency creates an empty efficiency over set. WithNaNTo sets the value
// reported for empty denominator bins (NaN by default).
func NewEfficiency(set *axis.Set, replicas int, opts ...Option) (*Efficiency, error) {
	c, err := newCore(set, replicas, opts)
	if err != nil {
		return nil, err
	}

	return newEfficiency(c, c.zeros(), c.zeros()), nil
}

func newEfficiency(c *core, num, den *dense.Array) *Efficiency {
	return &Efficiency{
		core:        c,
		numerator:   &Histogram{core: c, storage: num},
		denominator: &Histogram{core: c, storage: den},
	}
}

// Fill adds observations with their pass/fail outcome.
func (e *Efficiency) Fill(coords [][]float64, passed []bool, opts ...FillOption) error {
	b, err := e.prepare(coords, []perObservation{{"passed", len(passed)}}, opts)
	if err != nil {
		return err
	}

	accepted := 0
	e.run("efficiency", b, func(i, offset int, row []float64) {
		floats.Add(e.denominator.storage.Lane(offset), row)
		if passed[i] {
			floats.Add(e.numerator.storage.Lane(offset), row)
			accepted++
		}
	})

	e.cfg.logger.Debug("efficiency fill", zap.Int("passed", accepted), zap.Int("observations", b.n))

	return nil
}

// Efficiency returns numerator/denominator per bin and replica.
func (e *Efficiency) Efficiency() *dense.Array {
	fill := math.NaN()
	if e.cfg.hasNaNTo {
		fill = e.cfg.nanTo
	}

	num, den := e.numerator.storage.Values(), e.denominator.storage.Values()
	out := make([]float64, len(num))
	for i, d := range den {
		if d == 0 {
			out[i] = fill
			continue
		}
		out[i] = num[i] / d
	}

	ratio, err := dense.FromSlice(out, e.shape()...)
	if err != nil {
		panic(err)
	}

	return ratio
}

// Numerator returns a snapshot of the passing-observation histogram. Filling
// the snapshot does not affect e.
func (e *Efficiency) Numerator() *Histogram { return e.detach(e.numerator) }

// Denominator returns a snapshot of the all-observation histogram. Filling the
// snapshot does not affect e.
func (e *Efficiency) Denominator() *Histogram { return e.detach(e.denominator) }

func (e *Efficiency) detach(h *Histogram) *Histogram {
	return &Histogram{core: e.derive(e.set), storage: h.storage.Clone()}
}

// Axes returns the axis set.
func (e *Efficiency) Axes() *axis.Set { return e.set }

// Replicas returns R.
func (e *Efficiency) Replicas() int { return e.replicas }

// Mean reduces the replica axis of the ratio with stats.Mean.
func (e *Efficiency) Mean(sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Mean(e.Efficiency(), sel, opts...)
}

// Std reduces the replica axis of the ratio with stats.Std.
func (e *Efficiency) Std(sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Std(e.Efficiency(), sel, opts...)
}

// Percentile reduces the replica axis of the ratio with stats.Percentile.
func (e *Efficiency) Percentile(q []float64, sel stats.Selection, opts ...stats.Option) (*dense.Array, error) {
	return stats.Percentile(e.Efficiency(), q, sel, opts...)
}

// Add returns the efficiency holding the fills of both e and other.
func (e *Efficiency) Add(other *Efficiency) (*Efficiency, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", errs.ErrIncompatibleAxes)
	}
	if err := e.compatible(other.core); err != nil {
		return nil, err
	}

	num, err := e.numerator.storage.Add(other.numerator.storage)
	if err != nil {
		return nil, err
	}
	den, err := e.denominator.storage.Add(other.denominator.storage)
	if err != nil {
		return nil, err
	}

	return newEfficiency(e.derive(e.set), num, den), nil
}

// Project sums away every axis not listed in keep, in numerator and
// denominator alike.
func (e *Efficiency) Project(keep ...int) (*Efficiency, error) {
	set, num, err := project(e.set, e.numerator.storage, keep)
	if err != nil {
		return nil, err
	}
	_, den, err := project(e.set, e.denominator.storage, keep)
	if err != nil {
		return nil, err
	}

	return newEfficiency(e.derive(set), num, den), nil
}
