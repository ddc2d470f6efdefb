package table

// DecompressionTable is the decoder's string table, indexed by code.
type DecompressionTable struct {
	entries []Entry // index = code
	maxSize int
}

var _ Inserter = (*DecompressionTable)(nil)

// NewDecompressionTable returns an empty table that holds at most maxSize
// entries.
func NewDecompressionTable(maxSize int) *DecompressionTable {
	return &DecompressionTable{
		entries: make([]Entry, 0, maxSize),
		maxSize: maxSize,
	}
}

// NewSeededDecompressionTable returns a table of capacity maxSize holding the
// 256 literal entries.
func NewSeededDecompressionTable(maxSize int) *DecompressionTable {
	t := NewDecompressionTable(maxSize)
	seed(t)

	return t
}

// Size returns the number of entries.
func (t *DecompressionTable) Size() int {
	return len(t.entries)
}

// MaxSize returns the capacity fixed at construction.
func (t *DecompressionTable) MaxSize() int {
	return t.maxSize
}

// Full reports whether Insert would be a no-op.
func (t *DecompressionTable) Full() bool {
	return len(t.entries) >= t.maxSize
}

// Insert adds the string prefix+c under the next free code, or does nothing
// and returns false if the table is full.
func (t *DecompressionTable) Insert(prefix Prefix, c byte) (Code, bool) {
	if t.Full() {
		return 0, false
	}
	code := Code(len(t.entries))
	t.entries = append(t.entries, Entry{Prefix: prefix, Character: c, Code: code})

	return code, true
}

// Get returns the entry for code.
func (t *DecompressionTable) Get(code Code) (Entry, bool) {
	if int(code) >= len(t.entries) {
		return Entry{}, false
	}

	return t.entries[code], true
}

// Root returns the first byte of the string denoted by code by following
// prefix links to the literal at the start of the chain.
//
// The entry inserted right after a prune keeps the encoder's pre-prune code
// as its prefix, which may point at an entry that does not exist yet or at
// the entry itself. Root reports false when the chain leaves the table or
// does not reach a literal within MaxSize links.
func (t *DecompressionTable) Root(code Code) (byte, bool) {
	e, ok := t.Get(code)
	for range t.maxSize {
		if !ok {
			break
		}
		p, more := e.Prefix.Get()
		if !more {
			return e.Character, true
		}
		e, ok = t.Get(p)
	}

	return 0, false
}

// Entries returns the entries in code order.
//
// The returned slice aliases the table and must not be modified.
func (t *DecompressionTable) Entries() []Entry {
	return t.entries
}

// Prune returns a compacted copy of t; see Compact for the rules.
func (t *DecompressionTable) Prune() *DecompressionTable {
	pruned := NewDecompressionTable(t.maxSize)
	Compact(t.entries, pruned)

	return pruned
}

// Verify checks the table invariants; see Check.
func (t *DecompressionTable) Verify() error {
	return Check(t.entries, t.maxSize)
}
