package format

import "strings"

type (
	CompressionType uint8
	PruneMode       uint8
)

// Stream layout constants shared by the encoder and decoder.
const (
	HeaderBits     = 5   // HeaderBits is the width of the max_bits header field.
	InitialBits    = 9   // InitialBits is the code width at the start of every stream.
	LiteralCount   = 256 // LiteralCount is the number of pre-seeded single-byte entries.
	MinMaxBits     = 9   // MinMaxBits is the smallest accepted max_bits.
	MaxMaxBits     = 20  // MaxMaxBits is the largest accepted max_bits.
	DefaultMaxBits = 12  // DefaultMaxBits is used when no max_bits is configured.

	// AutoPruneAbove is the max_bits threshold above which PruneAuto enables pruning.
	AutoPruneAbove = 10
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionLZW  CompressionType = 0x5 // CompressionLZW represents pruning LZW compression.
)

const (
	PruneAuto   PruneMode = 0x0 // PruneAuto prunes only when max_bits exceeds AutoPruneAbove.
	PruneNever  PruneMode = 0x1 // PruneNever keeps a full table static.
	PruneAlways PruneMode = 0x2 // PruneAlways prunes whenever the table fills.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionLZW:
		return "LZW"
	default:
		return "Unknown"
	}
}

func (m PruneMode) String() string {
	switch m {
	case PruneAuto:
		return "Auto"
	case PruneNever:
		return "Never"
	case PruneAlways:
		return "Always"
	default:
		return "Unknown"
	}
}

// Enabled reports whether a table bounded by maxBits is pruned under mode m.
func (m PruneMode) Enabled(maxBits int) bool {
	switch m {
	case PruneNever:
		return false
	case PruneAlways:
		return true
	default:
		return maxBits > AutoPruneAbove
	}
}

// ParsePruneMode parses the textual form produced by PruneMode.String,
// case-insensitively. The second result is false for unknown names.
func ParsePruneMode(s string) (PruneMode, bool) {
	switch strings.ToLower(s) {
	case "auto", "":
		return PruneAuto, true
	case "never", "off":
		return PruneNever, true
	case "always", "on":
		return PruneAlways, true
	default:
		return PruneAuto, false
	}
}

// ValidMaxBits reports whether n is an accepted max_bits value.
func ValidMaxBits(n int) bool {
	return n >= MinMaxBits && n <= MaxMaxBits
}
