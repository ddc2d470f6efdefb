// Package endian provides the byte order used when integers are turned into
// bytes for hashing.
//
// Table keys are hashed over a fixed-width byte image of each integer. The
// image must not depend on the host, so the hash layer always asks for
// KeyEngine() rather than the native order:
//
//	engine := endian.KeyEngine()
//	var buf [4]byte
//	engine.PutUint32(buf[:], uint32(prefix))
//
// The returned engine is immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// KeyEngine returns the byte order used to serialize hash keys.
//
// It is little-endian, which reproduces the in-memory image of a 32-bit
// integer on the common little-endian hosts.
func KeyEngine() EndianEngine {
	return binary.LittleEndian
}
