// Package format defines the identifiers shared by the snapshot encoder and
// decoder: the container magic, the format version, and the compression type
// byte stored in the snapshot header.
package format

// CompressionType identifies the compression applied to a snapshot payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// SnapshotMagic marks the start of a serialized series snapshot.
const SnapshotMagic uint32 = 0x54504E53 // "SNPT" little-endian

// SnapshotVersion is the current snapshot layout version.
const SnapshotVersion uint8 = 1

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

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
