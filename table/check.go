package table

import (
	"fmt"

	"github.com/arloliu/lzw/format"
)

// InvariantError describes a table that breaks one of the structural rules
// checked by Check.
type InvariantError struct {
	Code   Code
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("table: code %d: %s", e.Code, e.Reason)
}

// Check verifies the structural invariants of a table's entries:
//   - size does not exceed maxSize
//   - entry i carries code i, so codes are exactly [0, size)
//   - the first format.LiteralCount entries are the literals in byte order
//   - every other entry has a prefix that refers to a code in the table
//
// Prefixes are not required to point backwards. The entry inserted after a
// prune keeps the pre-prune code as its prefix, and the next prune maps a
// forward prefix to 0 and a self reference to itself.
func Check(entries []Entry, maxSize int) error {
	if len(entries) > maxSize {
		return &InvariantError{Code: Code(len(entries)), Reason: fmt.Sprintf("size exceeds max size %d", maxSize)}
	}
	if len(entries) < format.LiteralCount {
		return &InvariantError{Code: Code(len(entries)), Reason: "literal entries missing"}
	}

	for i, e := range entries {
		code := Code(i)
		if e.Code != code {
			return &InvariantError{Code: code, Reason: fmt.Sprintf("stored code %d out of place", e.Code)}
		}

		if i < format.LiteralCount {
			if !e.IsLiteral() || e.Character != byte(i) {
				return &InvariantError{Code: code, Reason: "not the expected literal"}
			}

			continue
		}

		p, ok := e.Prefix.Get()
		if !ok {
			return &InvariantError{Code: code, Reason: "duplicate literal"}
		}
		if int(p) >= len(entries) {
			return &InvariantError{Code: code, Reason: fmt.Sprintf("dangling prefix reference %d", p)}
		}
	}

	return nil
}
