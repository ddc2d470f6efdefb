package lzw

import (
	"fmt"
	"io"

	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/internal/options"
	"github.com/arloliu/lzw/internal/xlog"
)

// Config holds the settings of an Encoder or a Decoder. It is built from
// Options; the zero value is not used directly.
type Config struct {
	maxBits int
	prune   format.PruneMode
	dump    io.Writer
	logger  xlog.Logger
	check   bool
}

// Option configures an Encoder or a Decoder.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{
		maxBits: format.DefaultMaxBits,
		prune:   format.PruneAuto,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithMaxBits sets the widest code the encoder may emit. The string table
// then holds at most 2^maxBits entries. Decoders ignore it and use the
// value from the stream header.
//
// Parameters:
//   - maxBits: Value in [format.MinMaxBits, format.MaxMaxBits]
//
// Returns:
//   - Option: Option failing with ErrInvalidMaxBits for out-of-range values
func WithMaxBits(maxBits int) Option {
	return options.New(func(cfg *Config) error {
		if !format.ValidMaxBits(maxBits) {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidMaxBits, maxBits, format.MinMaxBits, format.MaxMaxBits)
		}
		cfg.maxBits = maxBits

		return nil
	})
}

// WithPruning selects when a full string table is pruned.
//
// The mode is not recorded in the stream, so a decoder must use the mode its
// encoder used. The default, format.PruneAuto, derives the decision from
// max_bits alone and needs no coordination.
func WithPruning(mode format.PruneMode) Option {
	return options.New(func(cfg *Config) error {
		switch mode {
		case format.PruneAuto, format.PruneNever, format.PruneAlways:
			cfg.prune = mode
			return nil
		default:
			return fmt.Errorf("lzw: unknown prune mode %d", mode)
		}
	})
}

// WithTableDump writes a listing of the final string table to w once the
// stream has been fully encoded or decoded. See table.Dump for the layout.
func WithTableDump(w io.Writer) Option {
	return options.NoError(func(cfg *Config) {
		cfg.dump = w
	})
}

// WithTableChecks makes the coder verify its string table after every
// prune and fail with a *table.InvariantError if the table is malformed.
// It costs a pass over the table per prune.
func WithTableChecks() Option {
	return options.NoError(func(cfg *Config) {
		cfg.check = true
	})
}

// WithLogger sends width changes and prune events to l. A *log.Logger
// satisfies xlog.Logger.
func WithLogger(l xlog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.logger = l
	})
}
