package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ogier/pflag"

	"github.com/arloliu/lzw/format"
)

// errUsage marks errors that should print the usage text.
var errUsage = errors.New("usage error")

// Config is the resolved command configuration. Built-in defaults are
// overridden by the TOML file named by --config, which is overridden by
// flags given on the command line.
type Config struct {
	MaxBits int    `toml:"max_bits"`
	Prune   string `toml:"prune"`
	Verify  bool   `toml:"verify"`
	Dump    string `toml:"dump"`
	Verbose bool   `toml:"verbose"`

	File string `toml:"-"`
}

func defaultConfig() Config {
	return Config{
		MaxBits: format.DefaultMaxBits,
		Prune:   format.PruneAuto.String(),
	}
}

// PruneMode returns the parsed pruning mode.
func (c Config) PruneMode() (format.PruneMode, error) {
	mode, ok := format.ParsePruneMode(c.Prune)
	if !ok {
		return mode, fmt.Errorf("%w: unknown prune mode %q", errUsage, c.Prune)
	}

	return mode, nil
}

func (c Config) validate() error {
	if !format.ValidMaxBits(c.MaxBits) {
		return fmt.Errorf("%w: max bits %d not in [%d, %d]", errUsage, c.MaxBits, format.MinMaxBits, format.MaxMaxBits)
	}
	_, err := c.PruneMode()

	return err
}

// parseConfig parses args for the named command and returns the resolved
// configuration and the remaining positional arguments.
func parseConfig(name string, args []string, stderr io.Writer) (Config, []string, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(true)
	fs.Usage = func() {}

	var (
		maxBits = fs.IntP("max-bits", "m", format.DefaultMaxBits, "")
		prune   = fs.StringP("prune", "p", format.PruneAuto.String(), "")
		verify  = fs.Bool("verify", false, "")
		dump    = fs.String("dump", "", "")
		verbose = fs.BoolP("verbose", "v", false, "")
		file    = fs.String("config", "", "")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := defaultConfig()
	cfg.File = *file
	if cfg.File != "" {
		if err := loadConfigFile(cfg.File, &cfg); err != nil {
			return Config{}, nil, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "max-bits":
			cfg.MaxBits = *maxBits
		case "prune":
			cfg.Prune = *prune
		case "verify":
			cfg.Verify = *verify
		case "dump":
			cfg.Dump = *dump
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, nil, err
	}

	return cfg, fs.Args(), nil
}

func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}

		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}

	return nil
}
