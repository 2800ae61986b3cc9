package dense

import (
	"errors"
	"fmt"

	"github.com/arloliu/bootstraphist/compress"
	"github.com/arloliu/bootstraphist/endian"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
	"github.com/arloliu/bootstraphist/internal/hash"
	"github.com/arloliu/bootstraphist/internal/options"
	"github.com/arloliu/bootstraphist/internal/pool"
)

type encoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// EncodeOption configures Marshal.
type EncodeOption = options.Option[*encoderConfig]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) EncodeOption {
	return options.New(func(cfg *encoderConfig) error {
		if !c.Valid() {
			return fmt.Errorf("%w: compression %s", errs.ErrInvalidOption, c)
		}
		cfg.compression = c

		return nil
	})
}

// WithBigEndian writes shape and payload words big-endian.
func WithBigEndian() EncodeOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes shape and payload words little-endian (the default).
func WithLittleEndian() EncodeOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.bigEndian = false
	})
}

// Marshal encodes the array in its native binary format.
func (a *Array) Marshal(opts ...EncodeOption) ([]byte, error) {
	cfg := &encoderConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	h := newHeader(cfg.compression, cfg.bigEndian)
	engine := h.Engine()

	payload := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(payload)
	endian.PutFloat64s(engine, payload.Extend(8*len(a.data)), a.data)

	h.NDim = uint32(len(a.shape))
	h.Count = uint64(len(a.data))
	h.Checksum = hash.Sum(payload.Bytes())

	compressed, err := codec.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	out := make([]byte, 0, HeaderSize+4*len(a.shape)+len(compressed))
	out = append(out, h.Bytes()...)
	for _, d := range a.shape {
		out = engine.AppendUint32(out, uint32(d))
	}

	return append(out, compressed...), nil
}

// Unmarshal decodes an array produced by Marshal.
func Unmarshal(data []byte) (*Array, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	engine := h.Engine()

	if h.NDim > MaxNDim {
		return nil, fmt.Errorf("%w: %d dimensions, limit %d", errs.ErrInvalidShape, h.NDim, MaxNDim)
	}
	if h.Count > MaxCount {
		return nil, fmt.Errorf("%w: %d elements, limit %d", errs.ErrInvalidShape, h.Count, MaxCount)
	}

	rest := data[HeaderSize:]
	if uint64(len(rest)) < 4*uint64(h.NDim) {
		return nil, fmt.Errorf("%w: shape needs %d bytes, have %d", errs.ErrTruncatedPayload, 4*h.NDim, len(rest))
	}

	shape := make([]int, h.NDim)
	for i := range shape {
		shape[i] = int(engine.Uint32(rest[4*i:]))
	}
	rest = rest[4*h.NDim:]

	n, err := volume(shape)
	if err != nil {
		return nil, err
	}
	if uint64(n) != h.Count {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, header says %d", errs.ErrInvalidShape, shape, n, h.Count)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := compress.DecompressSize(codec, rest, 8*n)
	if errors.Is(err, compress.ErrSizeMismatch) {
		return nil, fmt.Errorf("%w: %w", errs.ErrTruncatedPayload, err)
	}
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	if hash.Sum(payload) != h.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	values := make([]float64, n)
	endian.Float64s(engine, payload, values)

	return newArray(shape, values), nil
}
