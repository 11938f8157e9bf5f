// Package endian provides the byte-order engine used by the snapshot
// encoder and decoder.
//
// It combines the ByteOrder and AppendByteOrder interfaces of the standard
// encoding/binary package into one interface, so a single value serves both
// fixed-offset reads and append-style writes:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, value)
//	value = engine.Uint64(buf)
//
// Snapshots are always written little-endian; the big-endian engine exists
// for callers embedding snapshot payloads into big-endian containers. The
// returned engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
