// Command lzw compresses and decompresses standard input with the lzw
// package.
//
// Installed under the name compress or decompress it behaves like the
// classic pair of filters:
//
//	compress [-m MAXBITS] < input > output
//	decompress < input > output
//
// Under any other name the first argument selects the mode:
//
//	lzw compress [-m MAXBITS] [--prune MODE] [--verify] [--dump FILE] < input > output
//	lzw decompress [--prune MODE] [--dump FILE] < input > output
//	lzw stats [-m MAXBITS] [--prune MODE] FILE...
//
// Defaults can be set in a TOML file passed with --config; flags override it.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kr/pretty"

	"github.com/arloliu/lzw"
	"github.com/arloliu/lzw/internal/hash"
)

const usageStr = `Usage: %[1]s compress [-m MAXBITS] < input > output
       %[1]s decompress < input > output
       %[1]s stats [-m MAXBITS] FILE...

  -m, --max-bits N    widest code, 9 to 20 (default 12)
  -p, --prune MODE    auto, never or always (default auto)
      --verify        check the table after each prune; on compress, also
                      decode the stream and compare digests
      --dump FILE     write the final string table to FILE
      --config FILE   read defaults from a TOML file
  -v, --verbose       log configuration, width changes and prunes
`

var errVerify = errors.New("verification failed")

func main() {
	name := filepath.Base(os.Args[0])
	log.SetPrefix(name + ": ")
	log.SetFlags(0)

	os.Exit(run(name, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, name+": ", 0)

	cmd := name
	switch name {
	case "compress":
	case "decompress":
		// the classic filter takes no options at all
		if len(args) > 0 {
			logger.Printf("invalid option '%s'", args[0])
			return 1
		}
	default:
		if len(args) == 0 {
			fmt.Fprintf(stderr, usageStr, name)
			return 1
		}
		cmd, args = args[0], args[1:]
	}

	cfg, rest, err := parseConfig(cmd, args, stderr)
	if err != nil {
		logger.Print(err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, usageStr, name)
		}

		return 1
	}
	if cfg.Verbose {
		logger.Printf("config %# v", pretty.Formatter(cfg))
	}

	switch cmd {
	case "compress":
		err = compressCmd(cfg, stdin, stdout, logger)
	case "decompress":
		err = decompressCmd(cfg, stdin, stdout, logger)
	case "stats":
		if len(rest) == 0 {
			logger.Print("stats needs at least one file")
			return 1
		}
		err = statsCmd(cfg, rest, stdout)
	default:
		fmt.Fprintf(stderr, usageStr, name)
		return 1
	}
	if err != nil {
		logger.Print(err)
		return 1
	}

	return 0
}

func codecOptions(cfg Config, logger *log.Logger) ([]lzw.Option, func() error, error) {
	mode, err := cfg.PruneMode()
	if err != nil {
		return nil, nil, err
	}
	opts := []lzw.Option{lzw.WithPruning(mode)}
	if cfg.Verbose {
		opts = append(opts, lzw.WithLogger(logger))
	}
	if cfg.Verify {
		opts = append(opts, lzw.WithTableChecks())
	}

	closeDump := func() error { return nil }
	if cfg.Dump != "" {
		f, err := os.Create(cfg.Dump)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, lzw.WithTableDump(f))
		closeDump = f.Close
	}

	return opts, closeDump, nil
}

func compressCmd(cfg Config, stdin io.Reader, stdout io.Writer, logger *log.Logger) (err error) {
	opts, closeDump, err := codecOptions(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDump(); err == nil {
			err = cerr
		}
	}()

	opts = append(opts, lzw.WithMaxBits(cfg.MaxBits))

	out := bufio.NewWriter(stdout)
	var dst io.Writer = out
	var stream bytes.Buffer
	digest := hash.NewWriter()
	src := stdin
	if cfg.Verify {
		dst = io.MultiWriter(out, &stream)
		src = hash.TeeReader(stdin, digest)
	}

	enc, err := lzw.NewEncoder(dst, opts...)
	if err != nil {
		return err
	}
	if _, err := io.Copy(enc, src); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if cfg.Verbose {
		logger.Printf("encoder stats %# v", pretty.Formatter(enc.Stats()))
	}

	if cfg.Verify {
		mode, _ := cfg.PruneMode()
		check := hash.NewWriter()
		if err := lzw.Decode(check, &stream, lzw.WithPruning(mode)); err != nil {
			return fmt.Errorf("%w: %v", errVerify, err)
		}
		if check.Sum64() != digest.Sum64() || check.Len() != digest.Len() {
			return fmt.Errorf("%w: digest %016x, round trip %016x", errVerify, digest.Sum64(), check.Sum64())
		}
		if cfg.Verbose {
			logger.Printf("verified %d bytes, digest %016x", digest.Len(), digest.Sum64())
		}
	}

	return nil
}

func decompressCmd(cfg Config, stdin io.Reader, stdout io.Writer, logger *log.Logger) (err error) {
	opts, closeDump, err := codecOptions(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDump(); err == nil {
			err = cerr
		}
	}()

	out := bufio.NewWriter(stdout)
	dec, err := lzw.NewDecoder(stdin, opts...)
	if err != nil {
		return err
	}
	if _, err := dec.WriteTo(out); err != nil {
		return err
	}
	if cfg.Verbose {
		logger.Printf("decoder stats %# v", pretty.Formatter(dec.Stats()))
	}

	return out.Flush()
}
