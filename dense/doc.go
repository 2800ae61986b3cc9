// Package dense implements the row-major N-dimensional float64 array that backs
// bootstrap histogram storage.
//
// The last axis of a histogram array is the replica axis, so every bin's R
// replica values form one contiguous "lane". Lane-oriented helpers (Lane, Lanes,
// ReduceLanes) exploit that layout; everything else is ordinary elementwise or
// axis-wise array arithmetic built on gonum's floats kernels.
//
// Arrays returned by histogram accessors are read-only by contract: mutate a
// Clone instead.
//
// # Binary Format
//
// Marshal produces the array's native save format:
//
//	+--------------------+----------------------+-------------------------+
//	| header (24 bytes)  | ndim x uint32 shape  | payload (compressed)    |
//	+--------------------+----------------------+-------------------------+
//
// The header carries a magic number, the byte order, the compression codec, the
// element count and an xxHash64 checksum of the uncompressed payload. The payload
// is the IEEE-754 encoding of every element in row-major order.
package dense
