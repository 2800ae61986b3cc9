package axis

import (
	"fmt"

	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
	"github.com/arloliu/bootstraphist/internal/options"
)

// Dropped is returned by Axis.Index for coordinates routed to a flow slot the
// axis does not retain.
const Dropped = -1

// Location classifies where a coordinate falls relative to an axis range.
type Location int8

const (
	InRange Location = iota
	Underflow
	Overflow
)

func (l Location) String() string {
	switch l {
	case InRange:
		return "in-range"
	case Underflow:
		return "underflow"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Axis is one binning dimension.
type Axis interface {
	// Kind reports the axis variant.
	Kind() format.AxisKind
	// Size returns the number of inner bins.
	Size() int
	// Extent returns the number of storage slots: inner bins plus retained flow slots.
	Extent() int
	// Locate returns the inner bin of v and whether v is in range.
	// For Underflow the bin is -1, for Overflow it is Size().
	Locate(v float64) (int, Location)
	// Index returns the storage slot of v in [0, Extent()), or Dropped.
	Index(v float64) int
	// Edges returns a copy of the Size()+1 bin edges.
	Edges() []float64
	// Underflow reports whether the axis retains an underflow slot.
	Underflow() bool
	// Overflow reports whether the axis retains an overflow slot.
	Overflow() bool
	// Label returns the axis metadata label.
	Label() string
	// Equal reports whether other bins identically.
	Equal(other Axis) bool

	sealed()
}

// InnerSlots returns the half-open storage slot range [lo, hi) of the inner bins of a.
func InnerSlots(a Axis) (lo, hi int) {
	if a.Underflow() {
		lo = 1
	}

	return lo, lo + a.Size()
}

type config struct {
	underflow bool
	overflow  bool
	label     string
}

// Option configures an axis at construction.
type Option = options.Option[*config]

// WithUnderflow sets whether coordinates below the axis range are kept in an underflow slot.
func WithUnderflow(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.underflow = enabled
	})
}

// WithOverflow sets whether coordinates above the axis range are kept in an overflow slot.
func WithOverflow(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.overflow = enabled
	})
}

// WithLabel attaches a metadata label, e.g. the quantity being binned.
func WithLabel(label string) Option {
	return options.NoError(func(c *config) {
		c.label = label
	})
}

func newConfig(opts []Option) (config, error) {
	cfg := config{underflow: true, overflow: true}
	if err := options.Apply(&cfg, opts...); err != nil {
		return config{}, fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}

	return cfg, nil
}

// flow holds the flow-slot policy shared by every axis variant.
type flow struct {
	under bool
	over  bool
	label string
}

func newFlow(cfg config) flow {
	return flow{under: cfg.underflow, over: cfg.overflow, label: cfg.label}
}

func (f flow) Underflow() bool { return f.under }
func (f flow) Overflow() bool  { return f.over }
func (f flow) Label() string   { return f.label }

func (f flow) extent(n int) int {
	ext := n
	if f.under {
		ext++
	}
	if f.over {
		ext++
	}

	return ext
}

func (f flow) slot(n, bin int, loc Location) int {
	offset := 0
	if f.under {
		offset = 1
	}

	switch loc {
	case Underflow:
		if !f.under {
			return Dropped
		}

		return 0
	case Overflow:
		if !f.over {
			return Dropped
		}

		return n + offset
	default:
		return bin + offset
	}
}

func (f flow) equal(o flow) bool {
	return f == o
}
