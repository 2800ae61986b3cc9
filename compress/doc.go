// Package compress provides the payload codecs used by the dense array binary format.
//
// A bootstrap histogram snapshot is dominated by its float64 payload: extents times
// replicas words, most of them small integers or repeated values for sparse bins.
// General-purpose compression shrinks that payload considerably.
//
// Supported codecs:
//   - None (format.CompressionNone): payload stored as-is
//   - Zstd (format.CompressionZstd): best ratio, the dense encoder default
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Zstd uses github.com/klauspost/compress/zstd unless the module is built with
// both cgo and the gozstd build tag, in which case github.com/valyala/gozstd is used.
// Both produce standard zstd frames, so snapshots are interchangeable.
//
// All codecs are stateless values and safe for concurrent use.
package compress
