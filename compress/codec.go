package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/bootstraphist/format"
)

// MaxDecodedSize bounds the output of every sized decompression.
const MaxDecodedSize = 1 << 30

// ErrSizeMismatch reports a payload that does not decode to the expected size.
var ErrSizeMismatch = errors.New("decompressed size mismatch")

// Compressor compresses a complete payload.
//
// The returned slice is owned by the caller unless documented otherwise; the input
// is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. Corrupted input or
// input from another algorithm yields an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decodes into a buffer of a known size and fails with
// ErrSizeMismatch when the payload would produce any other length. All built-in
// codecs implement it.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new Codec for the given compression type. target names the
// payload for error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

// DecompressSize decompresses data that must expand to exactly size bytes,
// using the codec's sized path when it has one.
func DecompressSize(d Decompressor, data []byte, size int) ([]byte, error) {
	if size < 0 || size > MaxDecodedSize {
		return nil, fmt.Errorf("%w: %d bytes requested, limit %d", ErrSizeMismatch, size, MaxDecodedSize)
	}
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	out, err := d.Decompress(data)
	if err != nil {
		return nil, err
	}

	if err := checkSize(len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}

func checkSize(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, got, want)
	}

	return nil
}

var builtinCodecs = newBuiltinCodecs()

func newBuiltinCodecs() map[format.CompressionType]Codec {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	codecs := make(map[format.CompressionType]Codec, len(types))
	for _, typ := range types {
		codec, err := CreateCodec(typ, "built-in")
		if err != nil {
			panic(err)
		}
		codecs[typ] = codec
	}

	return codecs
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
