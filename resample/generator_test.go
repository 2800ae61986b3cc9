package resample

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bootstraphist/errs"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("replica zero carries the sample weight", func(t *testing.T) {
		w, err := NewGenerator(1).Generate(50, 20, nil)
		require.NoError(t, err)
		require.Equal(t, 50, w.Rows())
		require.Equal(t, 20, w.Replicas())

		for i := range w.Rows() {
			require.Equal(t, 1.0, w.At(i, 0))
			for _, v := range w.Row(i)[1:] {
				require.GreaterOrEqual(t, v, 0.0)
				require.Equal(t, math.Trunc(v), v, "unit weights give integer counts")
			}
		}
	})

	t.Run("sample weights scale every replica", func(t *testing.T) {
		sw := []float64{0.5, 2, 0}
		scaled, err := NewGenerator(9).Generate(3, 10, sw)
		require.NoError(t, err)
		unit, err := NewGenerator(9).Generate(3, 10, nil)
		require.NoError(t, err)

		for i, s := range sw {
			require.Equal(t, s, scaled.At(i, 0))
			for r := 1; r < 10; r++ {
				require.Equal(t, s*unit.At(i, r), scaled.At(i, r))
			}
		}
	})

	t.Run("single replica has no resampling", func(t *testing.T) {
		w, err := NewGenerator(3).Generate(4, 1, []float64{1, 2, 3, 4})
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2, 3, 4}, w.data)
	})

	t.Run("zero observations", func(t *testing.T) {
		w, err := NewGenerator(3).Generate(0, 5, nil)
		require.NoError(t, err)
		require.Equal(t, 0, w.Rows())
	})

	t.Run("invalid input", func(t *testing.T) {
		g := NewGenerator(1)

		_, err := g.Generate(3, 5, []float64{1, 2})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = g.Generate(3, 0, nil)
		require.ErrorIs(t, err, errs.ErrInvalidReplicaCount)

		_, err = g.Generate(-1, 5, nil)
		require.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestGenerator_PoissonMoments(t *testing.T) {
	const n, r = 2000, 51
	w, err := NewGenerator(42).Generate(n, r, nil)
	require.NoError(t, err)

	var sum, sumSq float64
	for i := range n {
		for _, v := range w.Row(i)[1:] {
			sum += v
			sumSq += v * v
		}
	}
	count := float64(n * (r - 1))
	mean := sum / count
	variance := sumSq/count - mean*mean

	require.InDelta(t, 1.0, mean, 0.02)
	require.InDelta(t, 1.0, variance, 0.03)
}

func TestGenerator_Determinism(t *testing.T) {
	t.Run("same seed same stream", func(t *testing.T) {
		a, err := NewGenerator(7).Generate(100, 16, nil)
		require.NoError(t, err)
		b, err := NewGenerator(7).Generate(100, 16, nil)
		require.NoError(t, err)
		require.Equal(t, a.data, b.data)

		c, err := NewGenerator(8).Generate(100, 16, nil)
		require.NoError(t, err)
		require.NotEqual(t, a.data, c.data)
	})

	t.Run("chunked draws match one-shot draw", func(t *testing.T) {
		const n, r = 103, 12
		sw := Ones(n)

		oneShot := make([]float64, n*r)
		NewGenerator(5).Draw(oneShot, r, sw)

		chunked := make([]float64, n*r)
		g := NewGenerator(5)
		for lo := 0; lo < n; lo += 10 {
			hi := min(lo+10, n)
			g.Draw(chunked[lo*r:hi*r], r, sw[lo:hi])
		}

		require.Equal(t, oneShot, chunked)
	})

	t.Run("clone continues the same stream independently", func(t *testing.T) {
		g := NewGenerator(11)
		_, err := g.Generate(5, 4, nil)
		require.NoError(t, err)

		clone := g.Clone()
		a, err := g.Generate(20, 4, nil)
		require.NoError(t, err)
		b, err := clone.Generate(20, 4, nil)
		require.NoError(t, err)
		require.Equal(t, a.data, b.data)
	})
}

func TestFromPCG(t *testing.T) {
	src := rand.NewPCG(1, 2)
	before, err := src.MarshalBinary()
	require.NoError(t, err)

	g, err := FromPCG(src)
	require.NoError(t, err)
	_, err = g.Generate(10, 10, nil)
	require.NoError(t, err)

	after, err := src.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, before, after, "caller's source must not advance")

	state, err := g.State()
	require.NoError(t, err)
	require.NotEqual(t, before, state)

	_, err = FromPCG(nil)
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestGenerateSeeded(t *testing.T) {
	seeds := SeedsFromKeys([]string{"evt-1", "evt-2", "evt-1"})
	require.Equal(t, SeedFromKey("evt-1"), seeds[0])

	w, err := GenerateSeeded(seeds, 30, []float64{1, 1, 2})
	require.NoError(t, err)

	require.Equal(t, 2.0, w.At(2, 0))
	for r := 1; r < 30; r++ {
		require.Equal(t, 2*w.At(0, r), w.At(2, r), "equal keys share Poisson counts")
	}
	require.NotEqual(t, w.Row(0)[1:], w.Row(1)[1:])

	_, err = GenerateSeeded(seeds, 30, []float64{1})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func BenchmarkGenerator_Draw(b *testing.B) {
	const n, r = 1024, 100
	g := NewGenerator(1)
	dst := make([]float64, n*r)
	sw := Ones(n)

	b.ReportAllocs()
	for b.Loop() {
		g.Draw(dst, r, sw)
	}
}
