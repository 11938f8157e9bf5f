package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs. It suits archived snapshots where decompression is
// infrequent.
//
// Two implementations exist behind build tags: a cgo binding when cgo is
// available, and a pure-Go fallback otherwise. Both read each other's
// output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
