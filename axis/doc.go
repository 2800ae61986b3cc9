// Package axis defines the binning dimensions of a bootstrap histogram.
//
// An Axis maps a scalar coordinate to a bin. Four sealed variants implement the
// Axis interface:
//
//   - Regular: n equal-width half-open bins on [lo, hi)
//   - Variable: bins delimited by arbitrary strictly increasing edges
//   - Integer: one unit-width bin per integer in [lo, hi)
//   - Category: one bin per label of an enumeration
//
// FromEdges picks Regular when a regular axis reproduces the supplied edges
// exactly, and Variable otherwise.
//
// # Flow Slots
//
// Coordinates outside an axis range land in an underflow or overflow slot when
// the axis retains it, and are dropped otherwise. Regular, Variable and Integer
// axes retain both slots by default; Category axes only have an overflow slot.
// NaN coordinates are treated as overflow.
//
// Storage slot numbering follows the boost-histogram convention: slot 0 is the
// underflow slot when present, inner bins follow, then the overflow slot.
//
//	                underflow   inner bins 0..n-1   overflow
//	storage slot:   0           1..n                n+1
//
// # Axis Sets
//
// A Set is the ordered list of axes of one histogram. Its Shape lists every axis
// extent (inner bins plus retained flow slots) and Offset maps a coordinate tuple
// to a row-major flat slot. Axes and sets are immutable once constructed, so they
// can be shared freely between histograms.
package axis
