package compress

import (
	"github.com/arloliu/lzw"
	"github.com/arloliu/lzw/format"
)

// LZWCompressor adapts the lzw package to the Codec interface.
//
// The zero value is not usable; call NewLZWCompressor.
type LZWCompressor struct {
	maxBits int
	prune   format.PruneMode
}

var _ Codec = (*LZWCompressor)(nil)

// NewLZWCompressor creates an LZW codec.
//
// Parameters:
//   - maxBits: Widest code, see lzw.WithMaxBits
//   - prune: Pruning mode used in both directions
//
// Returns:
//   - LZWCompressor: New codec
//   - error: lzw.ErrInvalidMaxBits for an out-of-range maxBits
func NewLZWCompressor(maxBits int, prune format.PruneMode) (LZWCompressor, error) {
	if !format.ValidMaxBits(maxBits) {
		return LZWCompressor{}, lzw.ErrInvalidMaxBits
	}

	return LZWCompressor{maxBits: maxBits, prune: prune}, nil
}

// MaxBits returns the configured max bits.
func (c LZWCompressor) MaxBits() int {
	return c.maxBits
}

// Compress compresses data into an LZW stream. Unlike the other codecs, an
// empty input still yields the one-byte header.
func (c LZWCompressor) Compress(data []byte) ([]byte, error) {
	return lzw.Compress(data, lzw.WithMaxBits(c.maxBits), lzw.WithPruning(c.prune))
}

// Decompress decodes an LZW stream.
func (c LZWCompressor) Decompress(data []byte) ([]byte, error) {
	return lzw.Decompress(data, lzw.WithPruning(c.prune))
}
