// Package table implements the LZW string tables.
//
// A table maps codes to strings. Every entry denotes the string of its prefix
// entry with one more byte appended; entries without a prefix are the 256
// single-byte literals that every table starts with. Codes are dense: a table
// of size n holds exactly the codes [0, n), assigned in insertion order.
//
// Two representations share those rules:
//
//   - CompressionTable answers "which code extends prefix p by byte c?" through
//     a chained hash index. The encoder uses it.
//   - DecompressionTable answers "which prefix and byte does code k denote?"
//     by direct indexing. The decoder uses it.
//
// Both grow by one entry per Insert until they hold MaxSize entries, after
// which Insert is a no-op. Prune builds a compacted replacement table that
// keeps only the literals and the entries used as a prefix. A prefix usually
// names an earlier code, but the first entry inserted after a prune carries
// the code from before the prune and may name a later code, or its own.
//
// Tables are owned by a single encoder or decoder and are not safe for
// concurrent use.
package table

import (
	"fmt"
	"strconv"

	"github.com/arloliu/lzw/format"
)

// Code identifies a table entry, and with it the string the entry denotes.
type Code uint32

// Prefix is an optional Code.
//
// The zero value is None, which stands for the empty string: the prefix of
// every literal entry, and the encoder's "no pending match" state.
type Prefix struct {
	code  Code
	valid bool
}

// None is the absent prefix.
var None = Prefix{}

// Some returns a Prefix holding code.
func Some(code Code) Prefix {
	return Prefix{code: code, valid: true}
}

// Get returns the code and whether it is present.
func (p Prefix) Get() (Code, bool) {
	return p.code, p.valid
}

// IsNone reports whether p is absent.
func (p Prefix) IsNone() bool {
	return !p.valid
}

// key returns the signed image hashed and printed for p; None is -1.
func (p Prefix) key() int32 {
	if !p.valid {
		return -1
	}

	return int32(p.code)
}

// String returns the decimal code, or "-1" for None.
func (p Prefix) String() string {
	return strconv.Itoa(int(p.key()))
}

// Entry is one table row: the string of Prefix followed by Character.
type Entry struct {
	Prefix    Prefix
	Character byte
	Code      Code
}

// IsLiteral reports whether e denotes a single-byte string.
func (e Entry) IsLiteral() bool {
	return e.Prefix.IsNone()
}

func (e Entry) String() string {
	return fmt.Sprintf("{code:%d prefix:%s char:%d}", e.Code, e.Prefix, e.Character)
}

// Literal returns the code of the single-byte string c.
//
// Literals are inserted first and always survive a prune in ascending order,
// so the code of c is c in every table.
func Literal(c byte) Code {
	return Code(c)
}

// Inserter is the part of a table Compact rebuilds into.
type Inserter interface {
	Insert(prefix Prefix, c byte) (Code, bool)
	Size() int
}

// seed inserts the format.LiteralCount literal entries into an empty table.
func seed(t Inserter) {
	for c := range format.LiteralCount {
		t.Insert(None, byte(c))
	}
}
