// Package hash computes content digests used to check that a round trip
// reproduced its input.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Writer is an io.Writer that digests everything written through it.
type Writer struct {
	d *xxhash.Digest
	n int64
}

// NewWriter returns an empty digesting writer.
func NewWriter() *Writer {
	return &Writer{d: xxhash.New()}
}

// Write adds p to the digest.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.d.Write(p)
	w.n += int64(n)

	return n, err
}

// Sum64 returns the digest of everything written so far.
func (w *Writer) Sum64() uint64 {
	return w.d.Sum64()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.n
}

// TeeReader returns a reader that digests everything read from r into w.
func TeeReader(r io.Reader, w *Writer) io.Reader {
	return io.TeeReader(r, w)
}
