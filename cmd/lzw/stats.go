package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/arloliu/lzw/compress"
	"github.com/arloliu/lzw/format"
)

// statsCmd compares LZW with the baseline codecs on each file.
func statsCmd(cfg Config, files []string, stdout io.Writer) error {
	mode, err := cfg.PruneMode()
	if err != nil {
		return err
	}
	lzwCodec, err := compress.NewLZWCompressor(cfg.MaxBits, mode)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "file\talgorithm\tsize\tratio\tsavings\tcompress\tdecompress\t")

	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}

		label := fmt.Sprintf("LZW-%d", cfg.MaxBits)
		stats, err := compress.Measure(format.CompressionLZW, lzwCodec, data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		writeStatsRow(tw, name, label, stats)

		for _, ct := range compress.Baselines() {
			codec, err := compress.GetCodec(ct)
			if err != nil {
				return err
			}
			stats, err := compress.Measure(ct, codec, data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			writeStatsRow(tw, name, ct.String(), stats)
		}
	}

	return tw.Flush()
}

func writeStatsRow(w io.Writer, file, label string, s compress.CompressionStats) {
	fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.1f%%\t%v\t%v\t\n",
		file, label, s.CompressedSize, s.CompressionRatio(), s.SpaceSavings(),
		time.Duration(s.CompressionTimeNs).Round(time.Microsecond),
		time.Duration(s.DecompressionTimeNs).Round(time.Microsecond))
}
