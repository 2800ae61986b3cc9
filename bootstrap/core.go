package bootstrap

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/internal/options"
	"github.com/arloliu/bootstraphist/internal/pool"
	"github.com/arloliu/bootstraphist/resample"
)

// core holds what every accumulator shares: binning, replica count, the weight
// stream and ambient settings.
type core struct {
	set      *axis.Set
	replicas int
	gen      *resample.Generator
	cfg      *config
}

func newCore(set *axis.Set, replicas int, opts []Option) (*core, error) {
	if set == nil || set.Len() == 0 {
		return nil, errs.ErrNoAxes
	}
	if replicas < 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidReplicaCount, replicas)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	gen, err := cfg.generator()
	if err != nil {
		return nil, err
	}

	return &core{set: set, replicas: replicas, gen: gen, cfg: cfg}, nil
}

// derive returns a core for a result of arithmetic: same settings, an
// independent copy of the weight stream.
func (c *core) derive(set *axis.Set) *core {
	return &core{set: set, replicas: c.replicas, gen: c.gen.Clone(), cfg: c.cfg}
}

// shape returns the storage shape (extents..., R).
func (c *core) shape() []int {
	return append(c.set.Shape(), c.replicas)
}

func (c *core) zeros() *dense.Array {
	// Extents and replicas are validated positive, so Zeros cannot fail.
	a, err := dense.Zeros(c.shape()...)
	if err != nil {
		panic(err)
	}

	return a
}

func (c *core) compatible(other *core) error {
	if !c.set.Equal(other.set) {
		return errs.ErrIncompatibleAxes
	}
	if c.replicas != other.replicas {
		return fmt.Errorf("%w: %d vs %d", errs.ErrIncompatibleReplicas, c.replicas, other.replicas)
	}

	return nil
}

// batch is a validated fill: n observations with broadcast coordinates and
// materialized sample weights.
type batch struct {
	n       int
	coords  [][]float64
	weights []float64
	seeds   []uint64
}

// coord returns coordinate d of observation i, broadcasting length-1 slices.
func (b *batch) coord(d, i int) float64 {
	if len(b.coords[d]) == 1 {
		return b.coords[d][0]
	}

	return b.coords[d][i]
}

// perObservation names an extra per-observation input that must have length n.
type perObservation struct {
	name string
	n    int
}

// prepare validates a fill before anything is mutated. Every length problem is
// reported in one aggregated error.
func (c *core) prepare(coords [][]float64, extra []perObservation, opts []FillOption) (*batch, error) {
	if len(coords) != c.set.Len() {
		return nil, fmt.Errorf("%w: %d coordinate slices for %d axes", errs.ErrDimensionMismatch, len(coords), c.set.Len())
	}

	fc := &fillConfig{}
	if err := options.Apply(fc, opts...); err != nil {
		return nil, err
	}
	if fc.hasWeight && fc.weights != nil {
		return nil, fmt.Errorf("%w: WithWeight and WithWeights are exclusive", errs.ErrInvalidOption)
	}
	if fc.seeds != nil && fc.keys != nil {
		return nil, fmt.Errorf("%w: WithSeeds and WithRecordKeys are exclusive", errs.ErrInvalidOption)
	}

	inputs := make([]perObservation, 0, len(extra)+3)
	inputs = append(inputs, extra...)
	if fc.weights != nil {
		inputs = append(inputs, perObservation{"weights", len(fc.weights)})
	}
	if fc.seeds != nil {
		inputs = append(inputs, perObservation{"seeds", len(fc.seeds)})
	}
	if fc.keys != nil {
		inputs = append(inputs, perObservation{"record keys", len(fc.keys)})
	}

	n := batchLen(coords, inputs)

	var err error
	for d, cs := range coords {
		if len(cs) != 1 && len(cs) != n {
			err = multierr.Append(err, fmt.Errorf("%w: axis %d has %d coordinates, want %d or 1", errs.ErrLengthMismatch, d, len(cs), n))
		}
	}
	for _, in := range inputs {
		if in.n != n {
			err = multierr.Append(err, fmt.Errorf("%w: %s has %d entries, want %d", errs.ErrLengthMismatch, in.name, in.n, n))
		}
	}
	if err != nil {
		return nil, err
	}

	b := &batch{n: n, coords: coords, weights: fc.weights, seeds: fc.seeds}
	switch {
	case fc.hasWeight:
		b.weights = make([]float64, n)
		for i := range b.weights {
			b.weights[i] = fc.weight
		}
	case b.weights == nil:
		b.weights = resample.Ones(n)
	}
	if fc.keys != nil {
		b.seeds = resample.SeedsFromKeys(fc.keys)
	}

	return b, nil
}

// batchLen is the longest non-broadcast input length; 1 when every coordinate is
// a scalar and nothing else is given.
func batchLen(coords [][]float64, inputs []perObservation) int {
	n := -1
	for _, cs := range coords {
		if len(cs) != 1 && len(cs) > n {
			n = len(cs)
		}
	}
	for _, in := range inputs {
		if in.n > n {
			n = in.n
		}
	}
	if n < 0 {
		return 1
	}

	return n
}

// offsets locates every observation, storing the flat bin slot or -1 when the
// observation falls on a dropped flow bin. It returns the dropped count.
func (c *core) offsets(b *batch, dst []int) int {
	point, release := pool.GetFloat64Slice(c.set.Len())
	defer release()

	dropped := 0
	for i := range b.n {
		for d := range point {
			point[d] = b.coord(d, i)
		}
		off, ok := c.set.Offset(point)
		if !ok {
			off = -1
			dropped++
		}
		dst[i] = off
	}

	return dropped
}

// draw walks the batch in chunks, drawing each chunk's weight rows and handing
// every located observation to visit along with its row.
func (c *core) draw(b *batch, offsets []int, visit func(i, offset int, row []float64)) {
	r := c.replicas
	chunk := min(c.cfg.chunkSize, max(b.n, 1))

	buf, release := pool.GetFloat64Slice(chunk * r)
	defer release()

	for lo := 0; lo < b.n; lo += chunk {
		hi := min(lo+chunk, b.n)
		rows := buf[:(hi-lo)*r]
		if b.seeds != nil {
			resample.DrawSeeded(rows, r, b.seeds[lo:hi], b.weights[lo:hi])
		} else {
			c.gen.Draw(rows, r, b.weights[lo:hi])
		}

		for i := lo; i < hi; i++ {
			if offsets[i] < 0 {
				continue
			}
			k := i - lo
			visit(i, offsets[i], rows[k*r:(k+1)*r])
		}
	}
}

// run locates and draws a validated batch, logging the plan.
func (c *core) run(kind string, b *batch, visit func(i, offset int, row []float64)) {
	offsets, release := pool.GetIntSlice(b.n)
	defer release()

	dropped := c.offsets(b, offsets)
	c.draw(b, offsets, visit)

	if ce := c.cfg.logger.Check(zap.DebugLevel, "bootstrap fill"); ce != nil {
		chunks := (b.n + c.cfg.chunkSize - 1) / c.cfg.chunkSize
		ce.Write(
			zap.String("kind", kind),
			zap.Int("observations", b.n),
			zap.Int("replicas", c.replicas),
			zap.Int("chunk_size", c.cfg.chunkSize),
			zap.Int("chunks", chunks),
			zap.Int("dropped", dropped),
			zap.Bool("seeded", b.seeds != nil),
		)
	}
}
