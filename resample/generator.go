// Package resample draws Poisson bootstrap weights.
//
// For every observation with sample weight w the generator produces one row of R
// replica weights: replica 0 is w itself (the nominal, un-resampled fill) and each
// replica r >= 1 is w * k with k ~ Poisson(1). Rows are drawn observation by
// observation, replica by replica, so splitting a batch into chunks reproduces the
// one-shot draw exactly.
package resample

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/internal/hash"
)

// streamSalt derives the PCG stream word from a single seed.
const streamSalt = 0x9e3779b97f4a7c15

// Generator produces replica weight rows from a PCG stream.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	src     *rand.PCG
	poisson distuv.Poisson
}

// NewGenerator creates a generator whose stream is fully determined by seed.
func NewGenerator(seed uint64) *Generator {
	return newGenerator(rand.NewPCG(seed, seed^streamSalt))
}

// NewRandomGenerator creates a generator seeded from the runtime's entropy source.
func NewRandomGenerator() *Generator {
	return newGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// FromPCG creates a generator starting at src's current state. src itself is
// never advanced.
func FromPCG(src *rand.PCG) (*Generator, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil PCG source", errs.ErrInvalidOption)
	}

	clone, err := clonePCG(src)
	if err != nil {
		return nil, err
	}

	return newGenerator(clone), nil
}

func newGenerator(src *rand.PCG) *Generator {
	return &Generator{
		src:     src,
		poisson: distuv.Poisson{Lambda: 1, Src: src},
	}
}

func clonePCG(src *rand.PCG) (*rand.PCG, error) {
	state, err := src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot PCG state: %w", err)
	}

	clone := new(rand.PCG)
	if err := clone.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restore PCG state: %w", err)
	}

	return clone, nil
}

// Clone returns an independent generator at the same stream position.
func (g *Generator) Clone() *Generator {
	// PCG state is two uint64 words; marshaling it cannot fail.
	clone, err := clonePCG(g.src)
	if err != nil {
		panic(err)
	}

	return newGenerator(clone)
}

// State returns the serialized stream position.
func (g *Generator) State() ([]byte, error) {
	return g.src.MarshalBinary()
}

// Draw writes len(sampleWeights) rows of r replica weights into dst, row-major.
// dst must hold at least len(sampleWeights)*r values.
func (g *Generator) Draw(dst []float64, r int, sampleWeights []float64) {
	for i, w := range sampleWeights {
		row := dst[i*r : (i+1)*r]
		row[0] = w
		for j := 1; j < r; j++ {
			row[j] = w * g.poisson.Rand()
		}
	}
}

// DrawSeeded is Draw with an independent stream per observation, seeded from
// seeds[i]. Equal seeds yield equal Poisson counts, which correlates resamples of
// the same record across separately filled objects.
func DrawSeeded(dst []float64, r int, seeds []uint64, sampleWeights []float64) {
	for i := range sampleWeights {
		NewGenerator(seeds[i]).Draw(dst[i*r:(i+1)*r], r, sampleWeights[i:i+1])
	}
}

// Generate draws an n x r weight matrix. A nil sampleWeights means weight 1 for
// every observation; otherwise its length must be n.
func (g *Generator) Generate(n, r int, sampleWeights []float64) (*Weights, error) {
	sw, err := checkShape(n, r, sampleWeights)
	if err != nil {
		return nil, err
	}

	w := newWeights(n, r)
	g.Draw(w.data, r, sw)

	return w, nil
}

// GenerateSeeded draws one weight row per seed. A nil sampleWeights means weight
// 1; otherwise its length must equal len(seeds).
func GenerateSeeded(seeds []uint64, r int, sampleWeights []float64) (*Weights, error) {
	sw, err := checkShape(len(seeds), r, sampleWeights)
	if err != nil {
		return nil, err
	}

	w := newWeights(len(seeds), r)
	DrawSeeded(w.data, r, seeds, sw)

	return w, nil
}

// SeedFromKey derives a per-observation seed from a record identifier.
func SeedFromKey(key string) uint64 {
	return hash.ID(key)
}

// SeedsFromKeys maps SeedFromKey over keys.
func SeedsFromKeys(keys []string) []uint64 {
	seeds := make([]uint64, len(keys))
	for i, k := range keys {
		seeds[i] = SeedFromKey(k)
	}

	return seeds
}

func checkShape(n, r int, sampleWeights []float64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative observation count %d", errs.ErrInvalidOption, n)
	}
	if r < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidReplicaCount, r)
	}
	if sampleWeights == nil {
		return Ones(n), nil
	}
	if len(sampleWeights) != n {
		return nil, fmt.Errorf("%w: %d sample weights for %d observations", errs.ErrLengthMismatch, len(sampleWeights), n)
	}

	return sampleWeights, nil
}

// Ones returns n unit weights.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
