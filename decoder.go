package lzw

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/lzw/bitio"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/internal/stack"
	"github.com/arloliu/lzw/internal/xlog"
	"github.com/arloliu/lzw/table"
)

// decodeChunk is how much decoded output WriteTo gathers before writing.
const decodeChunk = 32 << 10

// byteSource counts the bytes taken from the wrapped reader.
type byteSource struct {
	r io.ByteReader
	n int64
}

func (s *byteSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err == nil {
		s.n++
	}

	return b, err
}

// Decoder rebuilds the original bytes from a stream produced by an Encoder.
//
// The max_bits header is read on the first call to Read or WriteTo. The
// pruning mode must match the one the encoder used; with the default,
// format.PruneAuto, both sides derive it from max_bits. A Decoder is not
// safe for concurrent use.
type Decoder struct {
	cfg     *Config
	in      byteSource
	bits    bitio.Channel
	table   *table.DecompressionTable
	stack   *stack.Stack
	started bool
	maxBits int
	prune   bool
	curBits int
	curMax  int
	oldCode table.Prefix
	out     []byte // decoded bytes not yet handed out
	pending []byte // unread tail of out
	stats   Stats
	err     error // sticky; io.EOF once the stream is exhausted
}

// NewDecoder creates a Decoder reading from r.
//
// If r does not implement io.ByteReader it is wrapped in a bufio.Reader, which
// may read ahead of the end of the compressed stream.
//
// Parameters:
//   - r: Source of the compressed stream
//   - opts: Decoder options; see WithPruning, WithTableDump, WithTableChecks
//     and WithLogger.
//     WithMaxBits has no effect, the header decides
//
// Returns:
//   - *Decoder: Decoder ready for Read or WriteTo
//   - error: First error returned by an option
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	d := &Decoder{cfg: cfg, oldCode: table.None}
	if br, ok := r.(io.ByteReader); ok {
		d.in.r = br
	} else {
		d.in.r = bufio.NewReader(r)
	}

	return d, nil
}

// start reads the header and sets up the string table. It returns io.EOF
// for an empty stream.
func (d *Decoder) start() error {
	d.started = true

	header, err := d.bits.ReadBits(&d.in, format.HeaderBits)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated header", ErrCorruptStream)
		}

		return err
	}
	if !format.ValidMaxBits(int(header)) {
		return fmt.Errorf("%w: header max bits %d", ErrCorruptStream, header)
	}

	d.maxBits = int(header)
	d.prune = d.cfg.prune.Enabled(d.maxBits)
	d.curBits = format.InitialBits
	d.curMax = 1 << format.InitialBits
	d.table = table.NewSeededDecompressionTable(1 << d.maxBits)
	d.stack = stack.New(1 << 8)

	d.stats.MaxBits = d.maxBits
	d.stats.Width = d.curBits
	d.stats.TableSize = d.table.Size()
	d.stats.PeakTableSize = d.table.Size()

	return nil
}

// step decodes one code and appends its string to d.out. It returns io.EOF
// when the stream holds no further complete code.
func (d *Decoder) step() error {
	if !d.started {
		if err := d.start(); err != nil {
			return err
		}
	}

	if d.prune && d.table.Full() {
		if err := d.pruneTable(); err != nil {
			return err
		}
	}

	next, err := d.bits.ReadBits(&d.in, d.curBits)
	if err != nil {
		// a partial code is the zero padding of the final byte
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}

		return err
	}

	first, err := d.expand(table.Code(next))
	if err != nil {
		return err
	}

	before := len(d.out)
	d.out = append(d.out, first)
	d.out = d.stack.AppendReversed(d.out)
	d.stats.BytesOut += int64(len(d.out) - before)
	d.stats.Codes++

	// after a prune oldCode keeps its pre-prune value, as the encoder's
	// pending code does
	if !d.oldCode.IsNone() {
		d.table.Insert(d.oldCode, first)
		d.observeTable()
	}
	d.oldCode = table.Some(table.Code(next))

	// the decoder trails the encoder by one entry
	if d.table.Size()+1 >= d.curMax && d.curBits < d.maxBits {
		d.widen()
	}

	return nil
}

// expand walks the prefix chain of code, pushing every byte but the first
// onto the stack, and returns the first byte.
//
// The decoder trails the encoder by one entry: the encoder already holds
// (oldCode, first byte of this string) under code Size. Wherever that code
// shows up, at the head of the chain or as a prefix left behind by a prune,
// it stands for the string of oldCode followed by that string's first byte.
func (d *Decoder) expand(code table.Code) (byte, error) {
	d.stack.Reset()

	for {
		if d.stack.Len() > d.table.MaxSize() {
			return 0, fmt.Errorf("%w: prefix chain of code %d loops", ErrCorruptStream, code)
		}

		if int(code) == d.table.Size() {
			old, ok := d.oldCode.Get()
			if !ok || d.table.Full() {
				return 0, fmt.Errorf("%w: code %d with table size %d", ErrCorruptStream, code, d.table.Size())
			}
			root, ok := d.table.Root(old)
			if !ok {
				return 0, fmt.Errorf("%w: code %d refers to unknown code %d", ErrCorruptStream, code, old)
			}
			d.stack.Push(root)
			code = old

			continue
		}

		entry, ok := d.table.Get(code)
		if !ok {
			return 0, fmt.Errorf("%w: code %d with table size %d", ErrCorruptStream, code, d.table.Size())
		}
		prefix, more := entry.Prefix.Get()
		if !more {
			return entry.Character, nil
		}
		d.stack.Push(entry.Character)
		code = prefix
	}
}

func (d *Decoder) widen() {
	d.curBits++
	d.curMax <<= 1
	d.stats.Width = d.curBits
	xlog.Printf(d.cfg.logger, "lzw: decoder width %d at table size %d", d.curBits, d.table.Size())
}

func (d *Decoder) pruneTable() error {
	before := d.table.Size()
	d.table = d.table.Prune()
	if d.cfg.check {
		if err := d.table.Verify(); err != nil {
			return err
		}
	}

	d.curBits = widthAfterPrune(d.table.Size(), d.maxBits)
	d.curMax = 1 << d.curBits
	d.stats.Prunes++
	d.stats.Width = d.curBits
	d.observeTable()
	xlog.Printf(d.cfg.logger, "lzw: decoder pruned %d -> %d entries, width %d", before, d.table.Size(), d.curBits)

	// the next code read is the one after the encoder's post-prune insert
	if d.table.Size()+1 == d.curMax && d.curBits < d.maxBits {
		d.widen()
	}

	return nil
}

func (d *Decoder) observeTable() {
	size := d.table.Size()
	d.stats.TableSize = size
	if size > d.stats.PeakTableSize {
		d.stats.PeakTableSize = size
	}
}

// finish records the end of the stream and writes the table dump if one was
// requested.
func (d *Decoder) finish(err error) error {
	d.err = err
	if err == io.EOF && d.cfg.dump != nil && d.table != nil {
		if dumpErr := table.Dump(d.cfg.dump, d.table.Entries()); dumpErr != nil {
			d.err = dumpErr
		}
	}

	return d.err
}

// Read decodes into p. It implements io.Reader.
func (d *Decoder) Read(p []byte) (int, error) {
	for len(d.pending) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		d.out = d.out[:0]
		if err := d.step(); err != nil {
			if err = d.finish(err); err != io.EOF {
				return 0, err
			}
		}
		d.pending = d.out
	}

	n := copy(p, d.pending)
	d.pending = d.pending[n:]

	return n, nil
}

// WriteTo decodes the rest of the stream into w. It implements io.WriterTo,
// so io.Copy uses it directly.
func (d *Decoder) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if len(d.pending) > 0 {
		n, err := w.Write(d.pending)
		total += int64(n)
		d.pending = d.pending[n:]
		if err != nil {
			return total, err
		}
	}
	if d.err != nil {
		if d.err == io.EOF {
			return total, nil
		}

		return total, d.err
	}

	d.out = d.out[:0]
	for {
		stepErr := d.step()
		if len(d.out) >= decodeChunk || (stepErr != nil && len(d.out) > 0) {
			n, err := w.Write(d.out)
			total += int64(n)
			if err != nil {
				d.pending = d.out[n:]
				return total, err
			}
			d.out = d.out[:0]
		}
		if stepErr != nil {
			if err := d.finish(stepErr); err != io.EOF {
				return total, err
			}

			return total, nil
		}
	}
}

// Stats returns a snapshot of the decoder's progress.
func (d *Decoder) Stats() Stats {
	s := d.stats
	s.BytesIn = d.in.n

	return s
}
