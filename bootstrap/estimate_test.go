package bootstrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bootstraphist/errs"
)

func TestEstimate_Arithmetic(t *testing.T) {
	a := Estimate{Nominal: 4, Samples: []float64{3, 5, 4}}
	b := Estimate{Nominal: 2, Samples: []float64{1, 2, 4}}

	tests := []struct {
		name string
		op   func(Estimate, Estimate) (Estimate, error)
		want Estimate
	}{
		{"add", Estimate.Add, Estimate{6, []float64{4, 7, 8}}},
		{"sub", Estimate.Sub, Estimate{2, []float64{2, 3, 0}}},
		{"mul", Estimate.Mul, Estimate{8, []float64{3, 10, 16}}},
		{"div", Estimate.Div, Estimate{2, []float64{3, 2.5, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %+v", got)
		})
	}

	t.Run("sample counts must match", func(t *testing.T) {
		_, err := a.Add(Estimate{Nominal: 1, Samples: []float64{1}})
		require.ErrorIs(t, err, errs.ErrIncompatibleReplicas)
	})
}

func TestEstimate_EqualAndStd(t *testing.T) {
	nan := math.NaN()
	a := Estimate{Nominal: nan, Samples: []float64{1, nan}}
	require.True(t, a.Equal(Estimate{Nominal: nan, Samples: []float64{1, nan}}))
	require.False(t, a.Equal(Estimate{Nominal: 0, Samples: []float64{1, nan}}))
	require.False(t, a.Equal(Estimate{Nominal: nan, Samples: []float64{1}}))

	e := Estimate{Nominal: 5, Samples: []float64{2, 4, 4, 4, 5, 5, 7, 9}}
	require.InDelta(t, math.Sqrt(32.0/7.0), e.Std(), 1e-12)
	require.True(t, math.IsNaN(Estimate{Samples: []float64{1}}.Std()))
}
