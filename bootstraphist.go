// Package bootstraphist provides Poisson bootstrap histograms: binned
// accumulators that carry, next to the ordinary histogram, R resampled
// replicas from which per-bin statistical uncertainties are read off without
// keeping the raw observations.
//
// # Core Features
//
//   - Regular, variable-width, integer and category axes with optional flow bins
//   - Replica 0 is always the plain histogram; replicas 1..R-1 use Poisson(1) weights
//   - Reproducible streams (seeded PCG) and per-record seeding for correlated resamples
//   - Mean, standard deviation and exact percentile bands over replicas
//   - Bootstrapped weighted moments and pass-fraction efficiencies
//   - Compact binary snapshots (None, Zstd, S2, LZ4) with xxHash64 integrity check
//
// # Basic Usage
//
//	x, _ := axis.Regular(50, 0, 100)
//	h, _ := bootstraphist.NewSeededHistogram(42, bootstraphist.DefaultReplicas, x)
//
//	_ = h.Fill([][]float64{energies})
//
//	nominal := h.Nominal()
//	errors, _ := h.Std(stats.BootstrapOnly)
//	band, _ := h.Percentile([]float64{2.5, 97.5}, stats.BootstrapOnly)
//
// # Package Structure
//
// This package offers top-level constructors for the common cases. The axis,
// bootstrap, stats and dense packages expose the full API.
package bootstraphist

import (
	"github.com/arloliu/bootstraphist/axis"
	"github.com/arloliu/bootstraphist/bootstrap"
	"github.com/arloliu/bootstraphist/dense"
	"github.com/arloliu/bootstraphist/format"
	"github.com/arloliu/bootstraphist/internal/hash"
)

// DefaultReplicas is the replica count used by most examples: the nominal plus
// 99 bootstrap replicas.
const DefaultReplicas = 100

// NewHistogram creates a bootstrap histogram over axes with a randomly seeded
// weight stream.
//
// Parameters:
//   - replicas: Number of replicas including the nominal (must be >= 1)
//   - axes: Axes in storage order (at least one)
//
// Returns:
//   - *bootstrap.Histogram: The empty histogram
//   - error: errs.ErrNoAxes, errs.ErrInvalidAxis or errs.ErrInvalidReplicaCount
//
// Example:
//
//	pt, _ := axis.Variable([]float64{0, 10, 20, 50, 100})
//	h, err := bootstraphist.NewHistogram(bootstraphist.DefaultReplicas, pt)
func NewHistogram(replicas int, axes ...axis.Axis) (*bootstrap.Histogram, error) {
	set, err := axis.NewSet(axes...)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewHistogram(set, replicas)
}

// NewSeededHistogram is NewHistogram with a reproducible weight stream: equal
// seeds and equal fills give bit-identical histograms.
func NewSeededHistogram(seed uint64, replicas int, axes ...axis.Axis) (*bootstrap.Histogram, error) {
	set, err := axis.NewSet(axes...)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewHistogram(set, replicas, bootstrap.WithSeed(seed))
}

// NewMoment creates a bootstrap moment accumulator over axes.
func NewMoment(replicas int, axes []axis.Axis, opts ...bootstrap.Option) (*bootstrap.Moment, error) {
	set, err := axis.NewSet(axes...)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewMoment(set, replicas, opts...)
}

// NewScalarMoment creates a moment accumulator without binning.
func NewScalarMoment(replicas int, opts ...bootstrap.Option) (*bootstrap.ScalarMoment, error) {
	return bootstrap.NewScalarMoment(replicas, opts...)
}

// NewEfficiency creates a bootstrap efficiency over axes.
//
// Example:
//
//	eta, _ := axis.Regular(10, -2.5, 2.5)
//	eff, _ := bootstraphist.NewEfficiency(bootstraphist.DefaultReplicas, []axis.Axis{eta},
//	    bootstrap.WithSeed(7), bootstrap.WithNaNTo(0))
//	_ = eff.Fill([][]float64{etas}, triggered)
func NewEfficiency(replicas int, axes []axis.Axis, opts ...bootstrap.Option) (*bootstrap.Efficiency, error) {
	set, err := axis.NewSet(axes...)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewEfficiency(set, replicas, opts...)
}

// Save encodes the full storage of h, Zstd-compressed.
//
// Axes are not part of the snapshot; Load needs the same axes to rebuild.
func Save(h *bootstrap.Histogram) ([]byte, error) {
	return h.View().Marshal(dense.WithCompression(format.CompressionZstd))
}

// Load rebuilds a histogram over axes from a Save snapshot.
func Load(data []byte, axes []axis.Axis, opts ...bootstrap.Option) (*bootstrap.Histogram, error) {
	set, err := axis.NewSet(axes...)
	if err != nil {
		return nil, err
	}
	arr, err := dense.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	return bootstrap.FromArray(set, arr, opts...)
}

// RecordSeed returns the per-observation seed for a record identifier, as
// used by bootstrap.WithRecordKeys.
func RecordSeed(key string) uint64 {
	return hash.ID(key)
}
