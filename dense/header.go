package dense

import (
	"fmt"

	"github.com/arloliu/bootstraphist/compress"
	"github.com/arloliu/bootstraphist/endian"
	"github.com/arloliu/bootstraphist/errs"
	"github.com/arloliu/bootstraphist/format"
)

const (
	// HeaderSize is the fixed size of the encoded array header.
	HeaderSize = 24

	// MaxNDim is the largest dimension count Unmarshal accepts.
	MaxNDim = 32
	// MaxCount is the largest element count Unmarshal accepts.
	MaxCount = compress.MaxDecodedSize / 8

	// EndiannessMask selects bit 1 of the flag word: 0 little-endian, 1 big-endian.
	EndiannessMask uint16 = 0x0002
	// MagicNumberMask selects bits 4-15 of the flag word.
	MagicNumberMask uint16 = 0xFFF0
	// MagicArrayV1 identifies the dense array format v1.
	MagicArrayV1 uint16 = 0xB570

	reservedMask uint16 = 0x000D
)

// Header is the fixed-size header at the start of an encoded array.
//
//	[0:2]   flag word (always little-endian)
//	[2]     compression type
//	[3]     reserved, must be 0
//	[4:8]   ndim
//	[8:16]  element count
//	[16:24] xxHash64 of the uncompressed payload
type Header struct {
	Flag        uint16
	Compression format.CompressionType
	NDim        uint32
	Count       uint64
	Checksum    uint64
}

func newHeader(compression format.CompressionType, bigEndian bool) Header {
	h := Header{Flag: MagicArrayV1, Compression: compression}
	if bigEndian {
		h.Flag |= EndiannessMask
	}

	return h
}

// IsBigEndian reports whether shape and payload words are big-endian.
func (h Header) IsBigEndian() bool {
	return h.Flag&EndiannessMask != 0
}

// Engine returns the byte-order engine for the fields after the flag word.
func (h Header) Engine() endian.EndianEngine {
	if h.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number, reserved bits and compression type.
func (h Header) Validate() error {
	if h.Flag&MagicNumberMask != MagicArrayV1 {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidHeaderFlags, h.Flag&MagicNumberMask)
	}
	if h.Flag&reservedMask != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: compression %d", errs.ErrInvalidHeaderFlags, h.Compression)
	}

	return nil
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b
}

func (h Header) put(b []byte) {
	_ = b[HeaderSize-1]

	endian.GetLittleEndianEngine().PutUint16(b[0:2], h.Flag)
	b[2] = uint8(h.Compression)
	b[3] = 0

	engine := h.Engine()
	engine.PutUint32(b[4:8], h.NDim)
	engine.PutUint64(b[8:16], h.Count)
	engine.PutUint64(b[16:24], h.Checksum)
}

// ParseHeader parses and validates the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{
		Flag:        endian.GetLittleEndianEngine().Uint16(data[0:2]),
		Compression: format.CompressionType(data[2]),
	}
	if data[3] != 0 {
		return Header{}, fmt.Errorf("%w: reserved byte set", errs.ErrInvalidHeaderFlags)
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	engine := h.Engine()
	h.NDim = engine.Uint32(data[4:8])
	h.Count = engine.Uint64(data[8:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h, nil
}
