// Package compress wraps general-purpose block compressors behind one Codec
// interface so that LZW output can be compared with them.
//
// Five codecs are provided, keyed by format.CompressionType:
//   - None: pass-through, the size baseline
//   - LZ4: pierrec/lz4 block format, fastest
//   - S2: klauspost/compress/s2 block format
//   - Zstd: klauspost/compress/zstd frames, strongest
//   - LZW: the lzw package, with a configurable max bits and pruning mode
//
// Typical use is Measure, which runs one round trip and reports sizes and
// timings:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	stats, err := compress.Measure(format.CompressionZstd, codec, data)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%.1f%% saved\n", stats.SpaceSavings())
//
// All codecs are safe for concurrent use. Zstd and LZ4 keep pooled
// encoder state; LZW uses pooled output buffers.
package compress
