package dense

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bootstraphist/errs"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

func TestZeros(t *testing.T) {
	t.Run("allocates row-major storage", func(t *testing.T) {
		a, err := Zeros(2, 3, 4)
		require.NoError(t, err)
		require.Equal(t, []int{2, 3, 4}, a.Shape())
		require.Equal(t, 3, a.NDim())
		require.Equal(t, 24, a.Len())
		require.Equal(t, 4, a.LaneLen())
		require.Equal(t, 6, a.NumLanes())
		require.Equal(t, 0.0, a.Sum())
	})

	t.Run("zero-dimensional array holds one element", func(t *testing.T) {
		a, err := Zeros()
		require.NoError(t, err)
		require.Equal(t, 1, a.Len())
		require.Equal(t, 0, a.NDim())
		a.Set(3)
		require.Equal(t, 3.0, a.At())
	})

	t.Run("rejects empty dimensions", func(t *testing.T) {
		_, err := Zeros(3, 0)
		require.ErrorIs(t, err, errs.ErrInvalidShape)
		require.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("rejects shapes whose volume overflows", func(t *testing.T) {
		_, err := Zeros(math.MaxInt/2, 3)
		require.ErrorIs(t, err, errs.ErrInvalidShape)
	})
}

func TestFromSlice(t *testing.T) {
	data := seq(6)
	a, err := FromSlice(data, 2, 3)
	require.NoError(t, err)

	data[0] = 99
	require.Equal(t, 0.0, a.At(0, 0), "input must be copied")
	require.Equal(t, 5.0, a.At(1, 2))
	require.Equal(t, 4, a.Offset(1, 1))

	_, err = FromSlice(seq(5), 2, 3)
	require.ErrorIs(t, err, errs.ErrInvalidShape)
}

func TestArray_IndexPanics(t *testing.T) {
	a, err := Zeros(2, 2)
	require.NoError(t, err)

	require.Panics(t, func() { a.At(2, 0) })
	require.Panics(t, func() { a.At(0) })
	require.Panics(t, func() { a.Set(1, -1, 0) })
}

func TestArray_Lanes(t *testing.T) {
	a, err := FromSlice(seq(12), 2, 2, 3)
	require.NoError(t, err)

	require.Equal(t, []float64{3, 4, 5}, a.Lane(1))

	var seen [][]float64
	for i, lane := range a.Lanes() {
		require.Len(t, lane, 3)
		require.Equal(t, float64(3*i), lane[0])
		seen = append(seen, lane)
	}
	require.Len(t, seen, 4)

	t.Run("lane aliases storage", func(t *testing.T) {
		a.Lane(2)[1] = -1
		require.Equal(t, -1.0, a.At(1, 0, 1))
	})

	t.Run("lane append does not clobber the next lane", func(t *testing.T) {
		lane := a.Lane(0)
		_ = append(lane, 100)
		require.Equal(t, 3.0, a.At(0, 1, 0))
	})

	t.Run("iteration stops early", func(t *testing.T) {
		count := 0
		for range a.Lanes() {
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})
}

func TestArray_CloneAndEqual(t *testing.T) {
	a, err := FromSlice([]float64{1, math.NaN(), 3, 4}, 2, 2)
	require.NoError(t, err)

	b := a.Clone()
	require.True(t, a.Equal(b), "NaN positions compare equal")

	b.Set(7, 0, 0)
	require.False(t, a.Equal(b))
	require.Equal(t, 1.0, a.At(0, 0))

	reshaped, err := FromSlice(a.Values(), 4)
	require.NoError(t, err)
	require.False(t, a.Equal(reshaped))
	require.False(t, a.Equal(nil))
	require.Equal(t, "dense.Array{shape: [2 2]}", a.String())
}

func TestArray_Elementwise(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := FromSlice([]float64{4, 3, 2, 0}, 2, 2)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   func(*Array, *Array) (*Array, error)
		want []float64
	}{
		{"add", (*Array).Add, []float64{5, 5, 5, 4}},
		{"sub", (*Array).Sub, []float64{-3, -1, 1, 4}},
		{"mul", (*Array).Mul, []float64{4, 6, 6, 0}},
		{"div follows IEEE-754", (*Array).Div, []float64{0.25, 2.0 / 3.0, 1.5, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			require.NoError(t, err)
			require.Equal(t, []int{2, 2}, got.Shape())
			assert.InDeltaSlice(t, tt.want[:3], got.Values()[:3], 1e-12)
			assert.Equal(t, tt.want[3], got.Values()[3])
		})
	}

	t.Run("operands are not mutated", func(t *testing.T) {
		require.Equal(t, []float64{1, 2, 3, 4}, a.Values())
		require.Equal(t, []float64{4, 3, 2, 0}, b.Values())
	})

	t.Run("shape mismatch", func(t *testing.T) {
		c, err := Zeros(4)
		require.NoError(t, err)
		_, err = a.Add(c)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
		_, err = a.Mul(nil)
		require.ErrorIs(t, err, errs.ErrIncompatible)
	})
}

func TestArray_ScalarOps(t *testing.T) {
	a, err := FromSlice([]float64{1, 2, 3}, 3)
	require.NoError(t, err)

	require.Equal(t, []float64{3, 4, 5}, a.AddScalar(2).Values())
	require.Equal(t, []float64{-2, -4, -6}, a.Scale(-2).Values())
	require.Equal(t, []float64{1, 4, 9}, a.Map(func(v float64) float64 { return v * v }).Values())
	require.Equal(t, []float64{1, 2, 3}, a.Values())
}
