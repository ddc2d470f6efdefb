package table

import "github.com/arloliu/lzw/endian"

const (
	fnvOffset64 = 0xcbf29ce484222325
	fnvPrime64  = 0x00000100000001b3
)

// hashKey returns the 64-bit FNV-1a hash of the 4-byte images of prefix and
// then c. None hashes as -1.
func hashKey(prefix Prefix, c byte) uint64 {
	var buf [8]byte
	engine := endian.KeyEngine()
	engine.PutUint32(buf[0:4], uint32(prefix.key()))
	engine.PutUint32(buf[4:8], uint32(c))

	h := uint64(fnvOffset64)
	for _, b := range buf {
		h ^= uint64(b)
		h *= fnvPrime64
	}

	return h
}
