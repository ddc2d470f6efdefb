package lzw

import "errors"

var (
	// ErrInvalidMaxBits is returned for a max_bits outside the accepted range.
	ErrInvalidMaxBits = errors.New("lzw: invalid max bits")
	// ErrCorruptStream is returned when the decoder meets a code it cannot
	// resolve or a header it cannot accept.
	ErrCorruptStream = errors.New("lzw: corrupt stream")
	// ErrClosed is returned when writing to a closed Encoder.
	ErrClosed = errors.New("lzw: encoder closed")
)
