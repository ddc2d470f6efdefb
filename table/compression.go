package table

// CompressionTable is the encoder's string table, indexed by (prefix, byte).
//
// Entries live in a code-ordered arena; the hash index chains arena positions
// per bucket with the newest entry at the head of its chain.
type CompressionTable struct {
	entries []Entry
	buckets []int32 // head arena index per bucket, -1 if empty
	next    []int32 // next arena index in the same bucket, -1 at chain end
	maxSize int
}

var _ Inserter = (*CompressionTable)(nil)

// NewCompressionTable returns an empty table that holds at most maxSize
// entries. The hash index has about 4/3 of maxSize buckets.
func NewCompressionTable(maxSize int) *CompressionTable {
	numBuckets := max(4*maxSize/3, 1)
	buckets := make([]int32, numBuckets)
	for i := range buckets {
		buckets[i] = -1
	}

	return &CompressionTable{
		entries: make([]Entry, 0, maxSize),
		buckets: buckets,
		next:    make([]int32, 0, maxSize),
		maxSize: maxSize,
	}
}

// NewSeededCompressionTable returns a table of capacity maxSize holding the
// 256 literal entries.
func NewSeededCompressionTable(maxSize int) *CompressionTable {
	t := NewCompressionTable(maxSize)
	seed(t)

	return t
}

// Size returns the number of entries.
func (t *CompressionTable) Size() int {
	return len(t.entries)
}

// MaxSize returns the capacity fixed at construction.
func (t *CompressionTable) MaxSize() int {
	return t.maxSize
}

// Full reports whether Insert would be a no-op.
func (t *CompressionTable) Full() bool {
	return len(t.entries) >= t.maxSize
}

func (t *CompressionTable) bucket(prefix Prefix, c byte) int {
	return int(hashKey(prefix, c) % uint64(len(t.buckets)))
}

// Insert adds the string prefix+c under the next free code.
//
// Insert is a no-op returning false when the table is full. Inserting a key
// that is already present shadows the older entry: Get finds the newest one.
func (t *CompressionTable) Insert(prefix Prefix, c byte) (Code, bool) {
	if t.Full() {
		return 0, false
	}

	code := Code(len(t.entries))
	b := t.bucket(prefix, c)
	t.entries = append(t.entries, Entry{Prefix: prefix, Character: c, Code: code})
	t.next = append(t.next, t.buckets[b])
	t.buckets[b] = int32(code)

	return code, true
}

// Get returns the entry for prefix+c.
func (t *CompressionTable) Get(prefix Prefix, c byte) (Entry, bool) {
	for i := t.buckets[t.bucket(prefix, c)]; i >= 0; i = t.next[i] {
		e := t.entries[i]
		if e.Prefix == prefix && e.Character == c {
			return e, true
		}
	}

	return Entry{}, false
}

// Entries returns the entries in code order.
//
// The returned slice aliases the table and must not be modified.
func (t *CompressionTable) Entries() []Entry {
	return t.entries
}

// Prune returns a compacted copy of t; see Compact for the rules.
func (t *CompressionTable) Prune() *CompressionTable {
	pruned := NewCompressionTable(t.maxSize)
	Compact(t.Entries(), pruned)

	return pruned
}

// Verify checks the table invariants; see Check.
func (t *CompressionTable) Verify() error {
	if err := Check(t.entries, t.maxSize); err != nil {
		return err
	}
	for _, e := range t.entries {
		if got, ok := t.Get(e.Prefix, e.Character); !ok || got.Code < e.Code {
			return &InvariantError{Code: e.Code, Reason: "entry not reachable through the hash index"}
		}
	}

	return nil
}
