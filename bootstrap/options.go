package bootstrap

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/internal/options"
	"github.com/arloliu/bootstraphist/resample"
)

// DefaultChunkSize is the number of observations whose weights are drawn at once.
const DefaultChunkSize = 1 << 16

type config struct {
	seed      *uint64
	pcg       *rand.PCG
	logger    *zap.Logger
	chunkSize int
	nanTo     float64
	hasNaNTo  bool
}

// Option configures an accumulator at construction.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		logger:    zap.NewNop(),
		chunkSize: DefaultChunkSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) generator() (*resample.Generator, error) {
	switch {
	case c.pcg != nil:
		return resample.FromPCG(c.pcg)
	case c.seed != nil:
		return resample.NewGenerator(*c.seed), nil
	default:
		return resample.NewRandomGenerator(), nil
	}
}

// WithSeed makes the weight stream reproducible. It overrides WithPCG.
func WithSeed(seed uint64) Option {
	return options.NoError(func(c *config) {
		c.seed = &seed
		c.pcg = nil
	})
}

// WithPCG starts the weight stream at the state of src. src is copied and never
// advanced. It overrides WithSeed.
func WithPCG(src *rand.PCG) Option {
	return options.New(func(c *config) error {
		if src == nil {
			return fmt.Errorf("%w: nil PCG source", errs.ErrInvalidOption)
		}
		c.pcg = src
		c.seed = nil

		return nil
	})
}

// WithLogger sets the logger for fill diagnostics. Fills log at Debug level only.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithChunkSize bounds how many observations' weights are materialized at once.
// The chunk size never changes results.
func WithChunkSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: chunk size %d", errs.ErrInvalidOption, n)
		}
		c.chunkSize = n

		return nil
	})
}

// WithNaNTo replaces efficiency ratios of empty denominator bins with v.
func WithNaNTo(v float64) Option {
	return options.NoError(func(c *config) {
		c.nanTo = v
		c.hasNaNTo = true
	})
}

type fillConfig struct {
	weight    float64
	hasWeight bool
	weights   []float64
	seeds     []uint64
	keys      []string
}

// FillOption configures a single fill.
type FillOption = options.Option[*fillConfig]

// WithWeight applies one sample weight to every observation.
func WithWeight(w float64) FillOption {
	return options.NoError(func(c *fillConfig) {
		c.weight = w
		c.hasWeight = true
	})
}

// WithWeights sets one sample weight per observation.
func WithWeights(w []float64) FillOption {
	return options.NoError(func(c *fillConfig) {
		c.weights = w
	})
}

// WithSeeds draws every observation's replica weights from its own stream
// seeded by seeds[i], instead of the accumulator's generator. Filling the same
// records with the same seeds into different accumulators correlates their
// replicas.
func WithSeeds(seeds []uint64) FillOption {
	return options.NoError(func(c *fillConfig) {
		c.seeds = seeds
	})
}

// WithRecordKeys is WithSeeds with seeds derived from record identifiers.
func WithRecordKeys(keys []string) FillOption {
	return options.NoError(func(c *fillConfig) {
		c.keys = keys
	})
}
