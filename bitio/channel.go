// Package bitio moves individual bits between a caller and a byte-oriented
// stream.
//
// A Channel holds at most one partially filled byte. Bits are packed
// most-significant-bit first: the first bit written to a byte ends up in its
// high bit, and the first bit read from a byte is its high bit. Values wider
// than a byte therefore straddle byte boundaries freely:
//
//	var ch bitio.Channel
//	_ = ch.WriteBits(w, 0x1FF, 9, false) // 1 full byte out, 1 bit buffered
//	_ = ch.WriteBits(w, 0x0, 3, true)    // 4 bits flushed, zero padded
//
// A Channel is not safe for concurrent use. Use one Channel per direction:
// the residue left by ReadBits and the pending bits of WriteBits share the
// same buffer.
package bitio

import (
	"errors"
	"fmt"
	"io"
)

// BufferBits is the capacity of the channel buffer.
const BufferBits = 8

// MaxWidth is the widest value ReadBits and WriteBits accept.
const MaxWidth = 32

var (
	// ErrBufferFull is returned by Push when the buffer already holds BufferBits bits.
	ErrBufferFull = errors.New("bitio: buffer full")
	// ErrBufferEmpty is returned by Pop when no bits are buffered.
	ErrBufferEmpty = errors.New("bitio: buffer empty")
	// ErrInvalidWidth is returned for widths outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("bitio: invalid width")
)

// Channel is a single-byte bit buffer.
//
// The zero value is an empty channel ready for use.
type Channel struct {
	buf  byte // valid bits are the low size bits, oldest bit highest
	size int  // number of valid bits in buf
}

// Len returns the number of buffered bits.
func (c *Channel) Len() int {
	return c.size
}

// Reset discards any buffered bits.
func (c *Channel) Reset() {
	c.buf = 0
	c.size = 0
}

// Push appends one bit to the low end of the buffer.
//
// Only the lowest bit of bit is used. Push returns ErrBufferFull when the
// buffer already holds BufferBits bits; the caller must drain it first.
func (c *Channel) Push(bit uint8) error {
	if c.size == BufferBits {
		return ErrBufferFull
	}
	c.buf = c.buf<<1 | bit&1
	c.size++

	return nil
}

// Pop removes and returns the oldest buffered bit, taken from the high end.
//
// Pop returns ErrBufferEmpty when no bits are buffered.
func (c *Channel) Pop() (uint8, error) {
	if c.size == 0 {
		return 0, ErrBufferEmpty
	}
	c.size--
	bit := c.buf >> c.size & 1
	c.buf &^= 1 << c.size

	return bit, nil
}

// FlushTo writes the buffered bits as one byte, padding the unused low bits
// with zeros, and clears the buffer.
//
// A byte is written even if the buffer is empty.
func (c *Channel) FlushTo(w io.ByteWriter) error {
	b := c.buf << (BufferBits - c.size)
	c.Reset()

	return w.WriteByte(b)
}

// WriteBits writes the low width bits of value to w, most significant first.
//
// Every time the buffer fills, it is written as a full byte, so at most
// BufferBits-1 bits stay buffered between calls. If flush is set and bits
// remain buffered at the end, they are written as a final zero-padded byte.
//
// Parameters:
//   - w: Destination stream
//   - value: Bits to write (only the low width bits are used)
//   - width: Number of bits, 1 to MaxWidth
//   - flush: Whether to pad out and write a trailing partial byte
//
// Returns:
//   - error: ErrInvalidWidth, or the first error returned by w
func (c *Channel) WriteBits(w io.ByteWriter, value uint32, width int, flush bool) error {
	if width < 1 || width > MaxWidth {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	for i := width - 1; i >= 0; i-- {
		// cannot fail: the buffer is drained as soon as it fills
		_ = c.Push(uint8(value >> uint(i) & 1))
		if c.size == BufferBits {
			if err := c.FlushTo(w); err != nil {
				return err
			}
		}
	}

	if flush && c.size > 0 {
		return c.FlushTo(w)
	}

	return nil
}

// ReadBits reads width bits from the buffer residue and then from r, and
// returns them as an unsigned integer, most significant bit first.
//
// Bits of a freshly read byte that are not needed stay buffered, in the
// order they were extracted, for the next call.
//
// Parameters:
//   - r: Source stream
//   - width: Number of bits, 1 to MaxWidth
//
// Returns:
//   - uint32: The value read; on end of stream, the bits gathered so far
//   - error: io.EOF if the stream ended before any bit of this value was
//     available, io.ErrUnexpectedEOF if it ended part way through, or any
//     other error returned by r
func (c *Channel) ReadBits(r io.ByteReader, width int) (uint32, error) {
	if width < 1 || width > MaxWidth {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}

	var value uint32
	n := 0
	for n < width {
		if c.size > 0 {
			bit, _ := c.Pop()
			value = value<<1 | uint32(bit)
			n++

			continue
		}

		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && n > 0 {
				err = io.ErrUnexpectedEOF
			}

			return value, err
		}

		consumed := 0
		for consumed < BufferBits && n < width {
			value = value<<1 | uint32(b>>(BufferBits-1-consumed)&1)
			consumed++
			n++
		}
		for ; consumed < BufferBits; consumed++ {
			_ = c.Push(b >> (BufferBits - 1 - consumed) & 1)
		}
	}

	return value, nil
}
