// Package lzw implements a variable-width LZW compressor and decompressor
// with optional pruning of the string table.
//
// # Stream Format
//
// A stream starts with a 5-bit header carrying max_bits, followed by a
// sequence of codes. Codes start 9 bits wide and widen by one bit each time
// the string table outgrows the current width, up to max_bits. Bits are
// packed most-significant-bit first and the last byte is padded with zeros.
// Nothing else is stored: no magic number, no length and no checksum.
//
// # Pruning
//
// When the string table reaches 2^max_bits entries it either stays static or
// is pruned: every entry that is not a prefix of another entry is dropped,
// except the single-byte literals. The survivors are renumbered densely and
// the code width shrinks to fit. The entry added right after a prune still
// uses the pre-prune code of the string being extended, on both sides.
// Encoder and decoder prune at the same point in the stream, so the pruning
// mode must agree on both sides. format.PruneAuto, the default, prunes when
// max_bits is above 10 and needs no coordination.
//
// # Basic Usage
//
//	compressed, err := lzw.Compress(data, lzw.WithMaxBits(16))
//	if err != nil {
//	    return err
//	}
//	restored, err := lzw.Decompress(compressed)
//
// Streaming:
//
//	enc, _ := lzw.NewEncoder(dst, lzw.WithMaxBits(12))
//	if _, err := io.Copy(enc, src); err != nil {
//	    return err
//	}
//	err := enc.Close()
package lzw

import (
	"bytes"
	"io"

	"github.com/arloliu/lzw/internal/pool"
)

// Encode compresses everything read from src and writes the stream to dst.
//
// Parameters:
//   - dst: Destination of the compressed stream
//   - src: Uncompressed input, read until io.EOF
//   - opts: Encoder options
//
// Returns:
//   - error: Option, read or write error
func Encode(dst io.Writer, src io.Reader, opts ...Option) error {
	enc, err := NewEncoder(dst, opts...)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		return err
	}

	return enc.Close()
}

// Decode decompresses the stream read from src and writes the original
// bytes to dst. An empty src decodes to nothing.
//
// Parameters:
//   - dst: Destination of the decompressed bytes
//   - src: Compressed stream
//   - opts: Decoder options
//
// Returns:
//   - error: ErrCorruptStream for an undecodable stream, or a read or write error
func Decode(dst io.Writer, src io.Reader, opts ...Option) error {
	dec, err := NewDecoder(src, opts...)
	if err != nil {
		return err
	}
	_, err = dec.WriteTo(dst)

	return err
}

// Compress returns the compressed form of data.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	enc, err := NewEncoder(buf, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Decompress returns the bytes encoded in data.
func Decompress(data []byte, opts ...Option) ([]byte, error) {
	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)

	dec, err := NewDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := dec.WriteTo(buf); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}
