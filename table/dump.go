package table

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Dump writes a human readable listing of entries to w: a title line, a
// header, and one tab-separated row per code with its prefix, its byte, and
// the full string as space-separated byte values.
//
// entries must be in code order, as returned by Entries.
func Dump(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "String Table Dump")
	fmt.Fprintf(bw, "%-8s\t%-8s\t%-12s\t%-8s\n", "Code", "Prefix", "Character", "String")

	var str []byte
	var line []byte
	for _, e := range entries {
		str = expand(entries, e, str[:0])

		line = line[:0]
		for _, b := range str {
			line = strconv.AppendInt(line, int64(b), 10)
			line = append(line, ' ')
		}
		fmt.Fprintf(bw, "%-8d\t%-8s\t%-12d\t%-8s\n", e.Code, e.Prefix, e.Character, line)
	}

	return bw.Flush()
}

// expand appends the string denoted by e to dst. A chain that leaves the
// table or loops is cut short; an entry naming itself as prefix expands to
// its own byte.
func expand(entries []Entry, e Entry, dst []byte) []byte {
	start := len(dst)
	for range len(entries) {
		dst = append(dst, e.Character)
		p, ok := e.Prefix.Get()
		if !ok || p == e.Code || int(p) >= len(entries) {
			break
		}
		e = entries[p]
	}
	slices.Reverse(dst[start:])

	return dst
}
