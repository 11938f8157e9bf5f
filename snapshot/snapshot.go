// Package snapshot serializes a Series to a compact binary image and
// restores it. A snapshot is self-describing: the header records the
// key, frequency, column names and matrix shape, and the payload holds
// the date codes followed by the value matrix in row-major order. The
// payload may be compressed with any registered codec, and an xxHash64
// checksum of the uncompressed payload guards against corruption.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chronolab/tempus/compress"
	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/endian"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/format"
	"github.com/chronolab/tempus/internal/hash"
	"github.com/chronolab/tempus/internal/options"
	"github.com/chronolab/tempus/internal/pool"
	"github.com/chronolab/tempus/internal/vector"
	"github.com/chronolab/tempus/series"
)

type encodeConfig struct {
	compression format.CompressionType
}

// Option configures snapshot encoding.
type Option = options.Option[*encodeConfig]

// WithCompression selects the payload compression codec.
// The default is no compression.
func WithCompression(typ format.CompressionType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if !typ.Valid() {
			return fmt.Errorf("invalid compression type: %d", typ)
		}
		cfg.compression = typ

		return nil
	})
}

// Encode serializes ts into a snapshot image.
func Encode(ts *series.Series, opts ...Option) ([]byte, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: nil series", errs.ErrCorruptedSnapshot)
	}

	cfg := encodeConfig{compression: format.CompressionNone}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	rows := ts.Values.Rows()
	cols := ts.Values.Cols()

	// Stage the uncompressed payload: date codes, then values row-major.
	payload := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(payload)

	for _, code := range ts.Dates {
		payload.B = engine.AppendUint64(payload.B, uint64(code))
	}
	for i := 0; i < rows; i++ {
		for _, v := range ts.Values.Row(i) {
			payload.B = engine.AppendUint64(payload.B, math.Float64bits(v))
		}
	}

	checksum := hash.Sum(payload.B)

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload.B)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSizeEstimate(ts)+len(compressed))
	out = engine.AppendUint32(out, format.SnapshotMagic)
	out = append(out, format.SnapshotVersion)
	out = append(out, byte(cfg.compression))
	out = append(out, byte(ts.Frequency))
	out = append(out, boolByte(ts.EndOfPeriod))
	out = appendString(out, ts.Key)
	out = binary.AppendUvarint(out, uint64(len(ts.Columns)))
	for _, name := range ts.Columns {
		out = appendString(out, name)
	}
	out = binary.AppendUvarint(out, uint64(rows))
	out = binary.AppendUvarint(out, uint64(cols))
	out = engine.AppendUint64(out, checksum)
	out = binary.AppendUvarint(out, uint64(len(compressed)))
	out = append(out, compressed...)

	return out, nil
}

// Decode restores a Series from a snapshot image produced by Encode.
func Decode(data []byte) (*series.Series, error) {
	r := reader{data: data}

	magic, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if magic != format.SnapshotMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", errs.ErrCorruptedSnapshot, magic)
	}

	version, err := r.byte()
	if err != nil {
		return nil, err
	}
	if version != format.SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrCorruptedSnapshot, version)
	}

	compByte, err := r.byte()
	if err != nil {
		return nil, err
	}
	compression := format.CompressionType(compByte)
	if !compression.Valid() {
		return nil, fmt.Errorf("%w: unknown compression type %d", errs.ErrCorruptedSnapshot, compByte)
	}

	freqByte, err := r.byte()
	if err != nil {
		return nil, err
	}
	freq := datecode.Frequency(freqByte)

	eopByte, err := r.byte()
	if err != nil {
		return nil, err
	}

	key, err := r.string()
	if err != nil {
		return nil, err
	}

	colCount, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	var columns []string
	if colCount > 0 {
		columns = make([]string, colCount)
		for i := range columns {
			columns[i], err = r.string()
			if err != nil {
				return nil, err
			}
		}
	}

	rows, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	cols, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if colCount != 0 && colCount != cols {
		return nil, fmt.Errorf("%w: %d column names for %d columns", errs.ErrCorruptedSnapshot, colCount, cols)
	}

	checksum, err := r.uint64()
	if err != nil {
		return nil, err
	}

	payloadLen, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	compressed, err := r.bytes(int(payloadLen))
	if err != nil {
		return nil, err
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrCorruptedSnapshot, r.remaining())
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCorruptedSnapshot, err)
	}

	// bound the counts against the decompressed size first so the length
	// product below cannot overflow on a crafted header; any non-empty
	// payload holds at least one date word per row and one value word per
	// column
	words := uint64(len(payload)) / 8
	if rows > 0 && (rows > words || cols >= words) {
		return nil, fmt.Errorf("%w: %d rows x %d cols exceeds payload size %d",
			errs.ErrCorruptedSnapshot, rows, cols, len(payload))
	}
	wantLen := 8 * int(rows) * (1 + int(cols))
	if len(payload) != wantLen {
		return nil, fmt.Errorf("%w: payload size %d, want %d", errs.ErrCorruptedSnapshot, len(payload), wantLen)
	}
	if hash.Sum(payload) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", errs.ErrCorruptedSnapshot)
	}

	engine := endian.GetLittleEndianEngine()
	dates := make([]int64, rows)
	for i := range dates {
		dates[i] = int64(engine.Uint64(payload[i*8:]))
	}
	values := vector.New(int(rows), int(cols))
	off := int(rows) * 8
	for i := 0; i < int(rows); i++ {
		row := values.Row(i)
		for j := range row {
			row[j] = math.Float64frombits(engine.Uint64(payload[off:]))
			off += 8
		}
	}

	ts, err := series.New(key, freq, eopByte != 0, dates, values)
	if err != nil {
		return nil, err
	}
	ts.Columns = columns

	return ts, nil
}

func headerSizeEstimate(ts *series.Series) int {
	n := 64 + len(ts.Key)
	for _, name := range ts.Columns {
		n += len(name) + 4
	}

	return n
}

func boolByte(b bool) byte {
	if b {
		return 1
	}

	return 0
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))

	return append(dst, s...)
}

// reader walks the snapshot buffer sequentially, turning every
// short read into ErrCorruptedSnapshot.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: truncated at offset %d", errs.ErrCorruptedSnapshot, r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return endian.GetLittleEndianEngine().Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}

	return endian.GetLittleEndianEngine().Uint64(b), nil
}

func (r *reader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", errs.ErrCorruptedSnapshot, r.off)
	}
	r.off += n

	return v, nil
}

func (r *reader) string() (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}
