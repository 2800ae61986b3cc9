// Package stats reduces the replica axis of bootstrap arrays into per-bin
// summaries: mean, sample standard deviation and percentile bands.
//
// Every function takes an array whose last axis holds the replicas of one bin
// and a Selection deciding whether the nominal replica 0 takes part in the
// statistic. Results drop the replica axis.
//
// Degenerate lanes produce NaN rather than errors: a lane left empty after
// WithIgnoreNaN, or a standard deviation over a single sample.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/internal/options"
	"github.com/arloliu/bootstraphist/internal/pool"
)

// Selection chooses which replicas enter a reduction.
type Selection uint8

const (
	// AllReplicas uses all R replicas, the nominal replica 0 included.
	AllReplicas Selection = iota
	// BootstrapOnly uses replicas 1..R-1 and ignores the nominal.
	BootstrapOnly
)

func (s Selection) String() string {
	switch s {
	case AllReplicas:
		return "AllReplicas"
	case BootstrapOnly:
		return "BootstrapOnly"
	default:
		return "Unknown"
	}
}

type config struct {
	ignoreNaN bool
}

// Option configures a reduction.
type Option = options.Option[*config]

// WithIgnoreNaN skips non-finite replica values instead of propagating them.
func WithIgnoreNaN() Option {
	return options.NoError(func(c *config) {
		c.ignoreNaN = true
	})
}

// Mean returns the arithmetic mean over the selected replicas of every bin.
func Mean(a *dense.Array, sel Selection, opts ...Option) (*dense.Array, error) {
	return reduce(a, sel, opts, func(x []float64) float64 {
		if len(x) == 0 {
			return math.NaN()
		}

		return stat.Mean(x, nil)
	})
}

// Std returns the sample standard deviation (n-1 denominator) over the selected
// replicas of every bin.
func Std(a *dense.Array, sel Selection, opts ...Option) (*dense.Array, error) {
	return reduce(a, sel, opts, func(x []float64) float64 {
		if len(x) < 2 {
			return math.NaN()
		}

		return stat.StdDev(x, nil)
	})
}

// Percentile returns, for every q in [0, 100], the q-th percentile over the
// selected replicas of every bin. The result has shape (len(q), bins...).
//
// Percentiles are exact: each lane is sorted once and every q is read from it
// with linear interpolation between closest ranks.
func Percentile(a *dense.Array, q []float64, sel Selection, opts ...Option) (*dense.Array, error) {
	if len(q) == 0 {
		return nil, fmt.Errorf("%w: no percentiles requested", errs.ErrPercentileRange)
	}
	for _, p := range q {
		if math.IsNaN(p) || p < 0 || p > 100 {
			return nil, fmt.Errorf("%w: got %v", errs.ErrPercentileRange, p)
		}
	}

	cfg, err := prepare(a, sel, opts)
	if err != nil {
		return nil, err
	}

	lanes := a.NumLanes()
	shape := append([]int{len(q)}, a.Shape()[:a.NDim()-1]...)
	dst := make([]float64, len(q)*lanes)

	scratch, release := pool.GetFloat64Slice(a.LaneLen())
	defer release()

	for i, lane := range a.Lanes() {
		x, hasNaN := eligible(scratch, lane, sel, cfg.ignoreNaN)
		if hasNaN || len(x) == 0 {
			for k := range q {
				dst[k*lanes+i] = math.NaN()
			}

			continue
		}

		sort.Float64s(x)
		for k, p := range q {
			dst[k*lanes+i] = interpolate(x, p)
		}
	}

	return dense.FromSlice(dst, shape...)
}

// interpolate reads percentile p from sorted x, interpolating linearly between
// the two closest ranks.
func interpolate(x []float64, p float64) float64 {
	pos := p / 100 * float64(len(x)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if frac == 0 || lo+1 >= len(x) {
		return x[lo]
	}

	return x[lo] + frac*(x[lo+1]-x[lo])
}

func prepare(a *dense.Array, sel Selection, opts []Option) (*config, error) {
	if a == nil || a.NDim() == 0 {
		return nil, fmt.Errorf("%w: array has no replica axis", errs.ErrInvalidShape)
	}
	if sel != AllReplicas && sel != BootstrapOnly {
		return nil, fmt.Errorf("%w: selection %d", errs.ErrInvalidOption, sel)
	}
	if sel == BootstrapOnly && a.LaneLen() < 2 {
		return nil, fmt.Errorf("%w: %s with %d replica(s)", errs.ErrNoEligibleReplicas, sel, a.LaneLen())
	}

	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func reduce(a *dense.Array, sel Selection, opts []Option, f func([]float64) float64) (*dense.Array, error) {
	cfg, err := prepare(a, sel, opts)
	if err != nil {
		return nil, err
	}

	scratch, release := pool.GetFloat64Slice(a.LaneLen())
	defer release()

	return a.ReduceLanes(func(lane []float64) float64 {
		x, hasNaN := eligible(scratch, lane, sel, cfg.ignoreNaN)
		if hasNaN {
			return math.NaN()
		}

		return f(x)
	}), nil
}

// eligible copies the selected replicas of lane into scratch. With ignoreNaN the
// non-finite values are dropped; otherwise hasNaN reports whether a NaN is present.
func eligible(scratch, lane []float64, sel Selection, ignoreNaN bool) (x []float64, hasNaN bool) {
	if sel == BootstrapOnly {
		lane = lane[1:]
	}

	x = scratch[:0]
	for _, v := range lane {
		switch {
		case ignoreNaN && (math.IsNaN(v) || math.IsInf(v, 0)):
			continue
		case math.IsNaN(v):
			hasNaN = true
		}
		x = append(x, v)
	}

	return x, hasNaN
}
