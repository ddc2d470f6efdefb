package lzw

import (
	"bufio"
	"io"

	"github.com/arloliu/lzw/bitio"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/internal/xlog"
	"github.com/arloliu/lzw/table"
)

// byteCounter counts the bytes that reach the wrapped writer.
type byteCounter struct {
	w io.ByteWriter
	n int64
}

func (c *byteCounter) WriteByte(b byte) error {
	if err := c.w.WriteByte(b); err != nil {
		return err
	}
	c.n++

	return nil
}

// Encoder compresses a byte stream into variable-width LZW codes.
//
// Bytes are fed with Write; Close emits the pending code, pads the final
// byte and flushes. An Encoder is not safe for concurrent use.
type Encoder struct {
	cfg     *Config
	bw      *bufio.Writer // set when the destination had to be buffered
	out     byteCounter
	bits    bitio.Channel
	table   *table.CompressionTable
	maxSize int
	prune   bool
	curBits int
	curMax  int
	current table.Prefix
	stats   Stats
	closed  bool
	err     error
}

// NewEncoder creates an Encoder writing to w and records the max_bits header.
//
// If w does not implement io.ByteWriter it is wrapped in a bufio.Writer,
// which Close flushes.
//
// Parameters:
//   - w: Destination of the compressed stream
//   - opts: Encoder options; see WithMaxBits, WithPruning, WithTableDump,
//     WithTableChecks and WithLogger
//
// Returns:
//   - *Encoder: Encoder ready for Write
//   - error: First error returned by an option
func NewEncoder(w io.Writer, opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		cfg:     cfg,
		maxSize: 1 << cfg.maxBits,
		prune:   cfg.prune.Enabled(cfg.maxBits),
		curBits: format.InitialBits,
		curMax:  1 << format.InitialBits,
		current: table.None,
	}
	e.table = table.NewSeededCompressionTable(e.maxSize)

	if bw, ok := w.(io.ByteWriter); ok {
		e.out.w = bw
	} else {
		e.bw = bufio.NewWriter(w)
		e.out.w = e.bw
	}

	e.stats.MaxBits = cfg.maxBits
	e.stats.Width = e.curBits
	e.stats.TableSize = e.table.Size()
	e.stats.PeakTableSize = e.table.Size()

	// five bits never fill the channel, so nothing reaches w yet
	if err := e.bits.WriteBits(&e.out, uint32(cfg.maxBits), format.HeaderBits, false); err != nil {
		return nil, err
	}

	return e, nil
}

// Write encodes p. It implements io.Writer.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if e.err != nil {
		return 0, e.err
	}

	for i, c := range p {
		if err := e.encodeByte(c); err != nil {
			e.err = err
			e.stats.BytesIn += int64(i)

			return i, err
		}
	}
	e.stats.BytesIn += int64(len(p))

	return len(p), nil
}

// WriteByte encodes a single byte. It implements io.ByteWriter.
func (e *Encoder) WriteByte(c byte) error {
	_, err := e.Write([]byte{c})
	return err
}

func (e *Encoder) encodeByte(c byte) error {
	if entry, ok := e.table.Get(e.current, c); ok {
		e.current = table.Some(entry.Code)
		return nil
	}

	// a miss is only possible once current holds a code, because every
	// literal is always present
	if err := e.emitCurrent(false); err != nil {
		return err
	}

	if e.prune && e.table.Full() {
		if err := e.pruneTable(); err != nil {
			return err
		}
	}

	// after a prune current still holds its pre-prune code; the decoder
	// inserts the same stale code, so the tables stay identical
	e.table.Insert(e.current, c)
	e.observeTable()
	e.current = table.Some(table.Literal(c))

	return nil
}

// emitCurrent writes the pending code, widening first when the table has
// outgrown the current width.
func (e *Encoder) emitCurrent(flush bool) error {
	if e.table.Size() >= e.curMax && e.curBits < e.cfg.maxBits {
		e.curBits++
		e.curMax <<= 1
		e.stats.Width = e.curBits
		xlog.Printf(e.cfg.logger, "lzw: encoder width %d at table size %d", e.curBits, e.table.Size())
	}

	code, _ := e.current.Get()
	if err := e.bits.WriteBits(&e.out, uint32(code), e.curBits, flush); err != nil {
		return err
	}
	e.stats.Codes++

	return nil
}

func (e *Encoder) pruneTable() error {
	before := e.table.Size()
	e.table = e.table.Prune()
	if e.cfg.check {
		if err := e.table.Verify(); err != nil {
			return err
		}
	}

	e.curBits = widthAfterPrune(e.table.Size(), e.cfg.maxBits)
	e.curMax = 1 << e.curBits
	e.stats.Prunes++
	e.stats.Width = e.curBits
	e.observeTable()
	xlog.Printf(e.cfg.logger, "lzw: encoder pruned %d -> %d entries, width %d", before, e.table.Size(), e.curBits)

	return nil
}

func (e *Encoder) observeTable() {
	size := e.table.Size()
	e.stats.TableSize = size
	if size > e.stats.PeakTableSize {
		e.stats.PeakTableSize = size
	}
}

// Close emits the pending code, pads the last byte with zeros and flushes
// any buffering added by NewEncoder. It does not close the underlying writer.
//
// Closing an already closed Encoder is a no-op.
func (e *Encoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}

	if !e.current.IsNone() {
		e.err = e.emitCurrent(true)
	} else if e.bits.Len() > 0 {
		e.err = e.bits.FlushTo(&e.out)
	}
	if e.err == nil && e.bw != nil {
		e.err = e.bw.Flush()
	}
	if e.err == nil && e.cfg.dump != nil {
		e.err = table.Dump(e.cfg.dump, e.table.Entries())
	}

	return e.err
}

// Stats returns a snapshot of the encoder's progress. BytesOut counts bytes
// handed to the destination, including any still held by its buffering.
func (e *Encoder) Stats() Stats {
	s := e.stats
	s.BytesOut = e.out.n

	return s
}
