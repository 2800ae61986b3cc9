package bootstrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/resample"
)

// twoPass computes weighted mean, population variance and skewness directly.
func twoPass(values, weights []float64) (mean, variance, skew float64) {
	var sw float64
	for i, v := range values {
		sw += weights[i]
		mean += weights[i] * v
	}
	mean /= sw

	var m2, m3 float64
	for i, v := range values {
		d := v - mean
		m2 += weights[i] * d * d
		m3 += weights[i] * d * d * d
	}
	variance = m2 / sw
	skew = (m3 / sw) / math.Pow(variance, 1.5)

	return mean, variance, skew
}

func TestMoment_NominalStatistics(t *testing.T) {
	set := regularSet(t, 1, 0, 1, axis.WithUnderflow(false), axis.WithOverflow(false))

	t.Run("unit weights", func(t *testing.T) {
		m, err := NewMoment(set, 10, WithSeed(1))
		require.NoError(t, err)
		require.NoError(t, m.Fill([][]float64{{0.5}}, []float64{1, 2, 3}))

		require.InDelta(t, 2.0, m.Mean().At(0, 0), 1e-12)
		require.InDelta(t, 2.0/3.0, m.Variance().At(0, 0), 1e-12)
		require.InDelta(t, math.Sqrt(2.0/3.0), m.Std().At(0, 0), 1e-12)
		require.InDelta(t, 0.0, m.Skewness().At(0, 0), 1e-12)
		require.Equal(t, 3.0, m.SumOfWeights().At(0, 0))
	})

	t.Run("weighted skewed sample", func(t *testing.T) {
		values := []float64{1, 2, 10, 4, 4.5}
		weights := []float64{0.5, 2, 1, 1.5, 3}
		mean, variance, skew := twoPass(values, weights)

		m, err := NewMoment(set, 4, WithSeed(1))
		require.NoError(t, err)
		require.NoError(t, m.Fill([][]float64{{0.5}}, values[:2], WithWeights(weights[:2])))
		require.NoError(t, m.Fill([][]float64{{0.5}}, values[2:], WithWeights(weights[2:])))

		require.InDelta(t, mean, m.Mean().At(0, 0), 1e-12)
		require.InDelta(t, variance, m.Variance().At(0, 0), 1e-12)
		require.InDelta(t, skew, m.Skewness().At(0, 0), 1e-12)
	})

	t.Run("replicas match a two-pass computation with their weights", func(t *testing.T) {
		values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
		seeds := []uint64{10, 11, 12, 13, 14, 15, 16, 17}

		m, err := NewMoment(set, 6, WithSeed(1))
		require.NoError(t, err)
		require.NoError(t, m.Fill([][]float64{{0.5}}, values, WithSeeds(seeds)))

		w, err := resample.GenerateSeeded(seeds, 6, nil)
		require.NoError(t, err)
		for r := range 6 {
			weights := make([]float64, len(values))
			for i := range values {
				weights[i] = w.At(i, r)
			}
			var sw float64
			for _, x := range weights {
				sw += x
			}
			if sw == 0 {
				require.True(t, math.IsNaN(m.Mean().At(0, r)))
				continue
			}

			mean, variance, _ := twoPass(values, weights)
			require.InDelta(t, mean, m.Mean().At(0, r), 1e-9, "replica %d", r)
			require.InDelta(t, variance, m.Variance().At(0, r), 1e-9, "replica %d", r)
		}
	})
}

func TestMoment_EmptyAndCancelledCells(t *testing.T) {
	m, err := NewMoment(regularSet(t, 2, 0, 2), 3, WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, m.Fill([][]float64{{0.5}}, []float64{5, 5}, WithWeights([]float64{1, -1})))

	require.Equal(t, []int{4, 3}, m.Mean().Shape())
	require.True(t, math.IsNaN(m.Mean().At(1, 0)), "weights cancelled to zero")
	require.True(t, math.IsNaN(m.Variance().At(2, 0)), "never filled")
	require.Equal(t, 0.0, m.SumOfWeights().At(1, 0))
}

func TestMoment_Add(t *testing.T) {
	set := regularSet(t, 3, 0, 3)
	xs := uniform(1, 120, 0, 3)
	values := uniform(2, 120, -2, 5)
	seeds := make([]uint64, len(xs))
	for i := range seeds {
		seeds[i] = uint64(i) * 7919
	}

	whole, err := NewMoment(set, 8, WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, whole.Fill([][]float64{xs}, values, WithSeeds(seeds)))

	a, err := NewMoment(set, 8, WithSeed(2))
	require.NoError(t, err)
	require.NoError(t, a.Fill([][]float64{xs[:45]}, values[:45], WithSeeds(seeds[:45])))
	b, err := NewMoment(set, 8, WithSeed(3))
	require.NoError(t, err)
	require.NoError(t, b.Fill([][]float64{xs[45:]}, values[45:], WithSeeds(seeds[45:])))

	merged, err := a.Add(b)
	require.NoError(t, err)

	check := func(want, got []float64) {
		t.Helper()
		require.Len(t, got, len(want))
		for i := range want {
			if math.IsNaN(want[i]) {
				require.True(t, math.IsNaN(got[i]), "index %d", i)
				continue
			}
			require.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
		}
	}
	check(whole.SumOfWeights().Values(), merged.SumOfWeights().Values())
	check(whole.Mean().Values(), merged.Mean().Values())
	check(whole.Variance().Values(), merged.Variance().Values())
	check(whole.Skewness().Values(), merged.Skewness().Values())

	t.Run("merging an empty accumulator is identity", func(t *testing.T) {
		empty, err := NewMoment(set, 8)
		require.NoError(t, err)
		same, err := whole.Add(empty)
		require.NoError(t, err)
		require.True(t, same.Equal(whole))
	})

	t.Run("incompatible", func(t *testing.T) {
		other, err := NewMoment(set, 4)
		require.NoError(t, err)
		_, err = whole.Add(other)
		require.ErrorIs(t, err, errs.ErrIncompatibleReplicas)
		_, err = whole.Add(nil)
		require.ErrorIs(t, err, errs.ErrIncompatibleAxes)
	})
}

func TestMoment_FillValidation(t *testing.T) {
	m, err := NewMoment(regularSet(t, 2, 0, 2), 3, WithSeed(1))
	require.NoError(t, err)

	err = m.Fill([][]float64{{0.5, 1.5}}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
	require.Equal(t, 0.0, m.SumOfWeights().Sum())

	_, err = NewMoment(regularSet(t, 2, 0, 2), 0)
	require.ErrorIs(t, err, errs.ErrInvalidReplicaCount)
}

func TestScalarMoment(t *testing.T) {
	s, err := NewScalarMoment(25, WithSeed(4))
	require.NoError(t, err)
	require.Equal(t, 25, s.Replicas())
	require.NoError(t, s.Fill([]float64{1, 2, 3}))

	mean := s.Mean()
	require.InDelta(t, 2.0, mean.Nominal, 1e-12)
	require.Len(t, mean.Samples, 24)
	require.InDelta(t, 2.0/3.0, s.Variance().Nominal, 1e-12)
	require.Equal(t, 3.0, s.SumOfWeights().Nominal)
	require.InDelta(t, 0.0, s.Skewness().Nominal, 1e-12)
	require.InDelta(t, math.Sqrt(2.0/3.0), s.Std().Nominal, 1e-12)

	more, err := NewScalarMoment(25, WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, more.Fill([]float64{4, 5}, WithWeight(2)))

	sum, err := s.Add(more)
	require.NoError(t, err)
	// 1, 2, 3 with weight 1 and 4, 5 with weight 2: mean 24/7
	require.InDelta(t, 24.0/7.0, sum.Mean().Nominal, 1e-12)

	_, err = s.Add(nil)
	require.ErrorIs(t, err, errs.ErrIncompatible)
}
