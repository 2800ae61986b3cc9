// Package format holds the small enumerations shared across bootstraphist packages.
package format

type (
	CompressionType uint8
	AxisKind        uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	AxisRegular  AxisKind = 0x1 // AxisRegular is a uniform-width binning.
	AxisVariable AxisKind = 0x2 // AxisVariable is a binning with arbitrary increasing edges.
	AxisInteger  AxisKind = 0x3 // AxisInteger bins consecutive integers.
	AxisCategory AxisKind = 0x4 // AxisCategory bins an enumeration of labels.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c names a supported compression.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (k AxisKind) String() string {
	switch k {
	case AxisRegular:
		return "Regular"
	case AxisVariable:
		return "Variable"
	case AxisInteger:
		return "Integer"
	case AxisCategory:
		return "Category"
	default:
		return "Unknown"
	}
}
