package compress

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/lzw/format"
)

// ErrRoundTripMismatch is returned by Measure when a codec does not give
// back its input.
var ErrRoundTripMismatch = errors.New("compress: round trip mismatch")

// Compressor compresses a complete buffer.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The returned slice is owned by the caller. Implementations other than
	// NoOpCompressor never alias data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress returns the bytes data was compressed from, or an error if
	// data is not a valid stream for the algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one measured round trip.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage. It is negative
// when the output is larger than the input.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses and decompresses data with codec, checks that the
// round trip restores data and reports sizes and timings.
//
// Parameters:
//   - algorithm: Type recorded in the result
//   - codec: Codec to measure
//   - data: Sample input
//
// Returns:
//   - CompressionStats: Sizes and timings of both directions
//   - error: Codec error, or ErrRoundTripMismatch
func Measure(algorithm format.CompressionType, codec Codec, data []byte) (CompressionStats, error) {
	stats := CompressionStats{Algorithm: algorithm, OriginalSize: int64(len(data))}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return stats, fmt.Errorf("%s compress: %w", algorithm, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	if err != nil {
		return stats, fmt.Errorf("%s decompress: %w", algorithm, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if !bytes.Equal(data, restored) {
		return stats, fmt.Errorf("%w: %s", ErrRoundTripMismatch, algorithm)
	}

	return stats, nil
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or LZW)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec for the specified type; LZW uses the default max bits
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionLZW:
		return NewLZWCompressor(format.DefaultMaxBits, format.PruneAuto)
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionLZW:  LZWCompressor{maxBits: format.DefaultMaxBits},
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Baselines lists the general-purpose algorithms LZW is compared against,
// in reporting order.
func Baselines() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZ4,
		format.CompressionS2,
		format.CompressionZstd,
	}
}
