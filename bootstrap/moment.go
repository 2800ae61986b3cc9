package bootstrap

import (
	"fmt"
	"math"

	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
)

// Moment accumulates the weighted mean, variance and skewness of a value per
// bin and replica. Each cell keeps the running sum of weights W, the mean M,
// and the central moment sums S (second) and T (third), updated in one pass.
type Moment struct {
	*core
	sumW *dense.Array
	mean *dense.Array
	m2   *dense.Array
	m3   *dense.Array
}

// NewMoment creates an empty moment accumulator over set.
func NewMoment(set *axis.Set, replicas int, opts ...Option) (*Moment, error) {
	c, err := newCore(set, replicas, opts)
	if err != nil {
		return nil, err
	}

	return &Moment{core: c, sumW: c.zeros(), mean: c.zeros(), m2: c.zeros(), m3: c.zeros()}, nil
}

// Fill adds observations located by coords whose measured quantity is values.
// Bootstrap weights are drawn exactly as for Histogram.Fill.
func (m *Moment) Fill(coords [][]float64, values []float64, opts ...FillOption) error {
	b, err := m.prepare(coords, []perObservation{{"values", len(values)}}, opts)
	if err != nil {
		return err
	}

	m.run("moment", b, func(i, offset int, row []float64) {
		sw, mu, s2, s3 := m.sumW.Lane(offset), m.mean.Lane(offset), m.m2.Lane(offset), m.m3.Lane(offset)
		for r, w := range row {
			accumulate(&sw[r], &mu[r], &s2[r], &s3[r], w, values[i])
		}
	})

	return nil
}

// accumulate folds value v with weight w into one cell.
func accumulate(sumW, mean, m2, m3 *float64, w, v float64) {
	if w == 0 {
		return
	}

	prevW := *sumW
	nextW := prevW + w
	if nextW == 0 {
		*sumW, *mean, *m2, *m3 = 0, 0, 0, 0
		return
	}

	delta := v - *mean
	nextMean := *mean + delta*w/nextW
	*m3 += delta*delta*delta*prevW*w*(prevW-w)/(nextW*nextW) - 3*delta*w*(*m2)/nextW
	*m2 += w * delta * (v - nextMean)
	*mean = nextMean
	*sumW = nextW
}

// merge combines cell b into cell a with the pairwise update of Chan et al.
func merge(sumW, mean, m2, m3 *float64, bW, bMean, bM2, bM3 float64) {
	aW := *sumW
	n := aW + bW
	switch {
	case bW == 0:
		return
	case n == 0:
		*sumW, *mean, *m2, *m3 = 0, 0, 0, 0
		return
	case aW == 0:
		*sumW, *mean, *m2, *m3 = bW, bMean, bM2, bM3
		return
	}

	delta := bMean - *mean
	*m3 += bM3 + delta*delta*delta*aW*bW*(aW-bW)/(n*n) + 3*delta*(aW*bM2-bW*(*m2))/n
	*m2 += bM2 + delta*delta*aW*bW/n
	*mean += delta * bW / n
	*sumW = n
}

// Add returns the accumulator holding the fills of both m and other.
func (m *Moment) Add(other *Moment) (*Moment, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nil operand", errs.ErrIncompatibleAxes)
	}
	if err := m.compatible(other.core); err != nil {
		return nil, err
	}

	out := &Moment{
		core: m.derive(m.set),
		sumW: m.sumW.Clone(),
		mean: m.mean.Clone(),
		m2:   m.m2.Clone(),
		m3:   m.m3.Clone(),
	}
	for lane := range out.sumW.NumLanes() {
		sw, mu, s2, s3 := out.sumW.Lane(lane), out.mean.Lane(lane), out.m2.Lane(lane), out.m3.Lane(lane)
		ow, om, o2, o3 := other.sumW.Lane(lane), other.mean.Lane(lane), other.m2.Lane(lane), other.m3.Lane(lane)
		for r := range sw {
			merge(&sw[r], &mu[r], &s2[r], &s3[r], ow[r], om[r], o2[r], o3[r])
		}
	}

	return out, nil
}

// Axes returns the axis set.
func (m *Moment) Axes() *axis.Set { return m.set }

// Replicas returns R.
func (m *Moment) Replicas() int { return m.replicas }

// SumOfWeights returns the accumulated weight per bin and replica.
func (m *Moment) SumOfWeights() *dense.Array { return m.sumW.Clone() }

// Mean returns the weighted mean per bin and replica; NaN for empty cells.
func (m *Moment) Mean() *dense.Array {
	return m.derived(func(w, mean, _, _ float64) float64 { return mean })
}

// Variance returns the weighted population variance S/W per bin and replica.
func (m *Moment) Variance() *dense.Array {
	return m.derived(func(w, _, m2, _ float64) float64 { return m2 / w })
}

// Std returns the square root of Variance.
func (m *Moment) Std() *dense.Array {
	return m.derived(func(w, _, m2, _ float64) float64 { return math.Sqrt(m2 / w) })
}

// Skewness returns the weighted population skewness per bin and replica.
// Cells with zero variance are NaN.
func (m *Moment) Skewness() *dense.Array {
	return m.derived(func(w, _, m2, m3 float64) float64 {
		if m2 == 0 {
			return math.NaN()
		}

		return m3 * math.Sqrt(w) / math.Pow(m2, 1.5)
	})
}

// Equal reports whether both accumulators have equal axes, replicas and state.
func (m *Moment) Equal(other *Moment) bool {
	return other != nil && m.compatible(other.core) == nil &&
		m.sumW.Equal(other.sumW) && m.mean.Equal(other.mean) &&
		m.m2.Equal(other.m2) && m.m3.Equal(other.m3)
}

func (m *Moment) derived(f func(w, mean, m2, m3 float64) float64) *dense.Array {
	w, mean, m2, m3 := m.sumW.Values(), m.mean.Values(), m.m2.Values(), m.m3.Values()
	out := make([]float64, len(w))
	for i := range out {
		if w[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = f(w[i], mean[i], m2[i], m3[i])
	}

	arr, err := dense.FromSlice(out, m.shape()...)
	if err != nil {
		panic(err)
	}

	return arr
}
