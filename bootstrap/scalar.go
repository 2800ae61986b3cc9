package bootstrap

import (
	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/dense"
)

// ScalarMoment is a Moment without binning: it tracks the bootstrap
// distribution of the mean, variance and skewness of one quantity.
type ScalarMoment struct {
	moment *Moment
}

var origin = [][]float64{{0}}

// NewScalarMoment creates an empty axis-less moment accumulator.
func NewScalarMoment(replicas int, opts ...Option) (*ScalarMoment, error) {
	single, err := axis.Integer(0, 1, axis.WithUnderflow(false), axis.WithOverflow(false))
	if err != nil {
		return nil, err
	}
	set, err := axis.NewSet(single)
	if err != nil {
		return nil, err
	}

	m, err := NewMoment(set, replicas, opts...)
	if err != nil {
		return nil, err
	}

	return &ScalarMoment{moment: m}, nil
}

// Fill adds values. Weight and seed options apply as for Histogram.Fill.
func (s *ScalarMoment) Fill(values []float64, opts ...FillOption) error {
	return s.moment.Fill(origin, values, opts...)
}

// Replicas returns R.
func (s *ScalarMoment) Replicas() int { return s.moment.replicas }

// SumOfWeights returns the accumulated weight.
func (s *ScalarMoment) SumOfWeights() Estimate { return estimate(s.moment.sumW) }

// Mean returns the weighted mean.
func (s *ScalarMoment) Mean() Estimate { return estimate(s.moment.Mean()) }

// Variance returns the weighted population variance.
func (s *ScalarMoment) Variance() Estimate { return estimate(s.moment.Variance()) }

// Std returns the weighted population standard deviation.
func (s *ScalarMoment) Std() Estimate { return estimate(s.moment.Std()) }

// Skewness returns the weighted population skewness.
func (s *ScalarMoment) Skewness() Estimate { return estimate(s.moment.Skewness()) }

// Add returns the accumulator holding the fills of both s and other.
func (s *ScalarMoment) Add(other *ScalarMoment) (*ScalarMoment, error) {
	var om *Moment
	if other != nil {
		om = other.moment
	}

	m, err := s.moment.Add(om)
	if err != nil {
		return nil, err
	}

	return &ScalarMoment{moment: m}, nil
}

func estimate(a *dense.Array) Estimate {
	lane := a.Lane(0)
	return Estimate{Nominal: lane[0], Samples: append([]float64(nil), lane[1:]...)}
}
