// Package bootstrap implements Poisson bootstrap accumulators over binned axes.
//
// A Histogram stores, for every bin of its axis.Set, R replica sums. Each fill
// draws one row of R weights per observation from a resample.Generator: replica
// 0 receives the plain sample weight, so it always equals the ordinary
// histogram, while replicas 1..R-1 receive the weight times a Poisson(1) count.
// The spread of the replicas estimates the sampling uncertainty of every bin
// without keeping the observations.
//
//	set, _ := axis.NewSet(must(axis.Regular(20, 0, 10)))
//	h, _ := bootstrap.NewHistogram(set, 100, bootstrap.WithSeed(1))
//	_ = h.Fill([][]float64{xs})
//	nominal := h.Nominal()
//	band, _ := h.Percentile([]float64{16, 84}, stats.BootstrapOnly)
//
// Moment accumulates weighted mean, variance and skewness per bin and replica.
// Efficiency pairs a numerator and a denominator Histogram that share one
// weight draw per observation, so the per-replica ratio is a valid bootstrap
// estimate of a pass fraction.
//
// Storage layout is (axis extents..., R) in row-major order with the replica
// axis last. Arrays returned by View, Nominal, Bins and friends are read-only by
// contract.
//
// No type in this package is safe for concurrent fills; callers serialize.
package bootstrap
