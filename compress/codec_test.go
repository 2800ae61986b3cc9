package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bootstraphist/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// histogramPayload mimics a sparse histogram snapshot: mostly zero bins with
// small integer counts scattered across replicas.
func histogramPayload(n int) []byte {
	buf := make([]byte, 8*n)
	for i := range n {
		var v float64
		if i%7 == 0 {
			v = float64(i % 5)
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}

	return buf
}

func TestGetCodec(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)
			require.NotNil(t, codec)

			created, err := CreateCodec(typ, "payload")
			require.NoError(t, err)
			require.IsType(t, codec, created)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := GetCodec(format.CompressionType(0x7))
		require.Error(t, err)

		_, err = CreateCodec(format.CompressionType(0), "payload")
		require.ErrorContains(t, err, "invalid payload compression")
	})
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single word":   histogramPayload(1),
		"sparse lanes":  histogramPayload(1000),
		"large payload": histogramPayload(200_000),
		"text":          bytes.Repeat([]byte("replica "), 512),
	}

	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestAllCodecs_ShrinkSparsePayload(t *testing.T) {
	data := histogramPayload(10_000)
	for _, typ := range allTypes[1:] {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data)/2)
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			restored, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0x00, 0x01, 0x02, 0x03}
	for _, typ := range allTypes[1:] {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			_, err = DecompressSize(codec, garbage, 64)
			require.Error(t, err)
		})
	}
}

func TestDecompressSize(t *testing.T) {
	data := histogramPayload(10_000)
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			restored, err := DecompressSize(codec, compressed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, restored)
		})
	}

	t.Run("lz4 buffer too small", func(t *testing.T) {
		codec := NewLZ4Compressor()
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		_, err = codec.DecompressSized(compressed, len(data)/2)
		require.Error(t, err)
	})

	t.Run("limit applies before decoding", func(t *testing.T) {
		_, err := DecompressSize(NewLZ4Compressor(), []byte{0}, MaxDecodedSize+1)
		require.ErrorIs(t, err, ErrSizeMismatch)
	})
}

func TestDecompressSize_Mismatch(t *testing.T) {
	data := histogramPayload(512)
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = DecompressSize(codec, compressed, len(data)+8)
			require.ErrorIs(t, err, ErrSizeMismatch)
		})
	}
}

func TestNoOpCompressor_Aliases(t *testing.T) {
	data := []byte{1, 2, 3}
	codec := NewNoOpCompressor()

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])

	out, err = codec.Decompress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := histogramPayload(4096)
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			var wg sync.WaitGroup
			errCh := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					restored, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(data, restored) {
						errCh <- bytes.ErrTooLarge
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkAllCodecs_RoundTrip(b *testing.B) {
	data := histogramPayload(64 * 100)
	for _, typ := range allTypes {
		codec, _ := GetCodec(typ)
		b.Run(typ.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				compressed, _ := codec.Compress(data)
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
