package table

// Compact rebuilds the entries worth keeping into dst, an empty table.
//
// An entry is kept if it is a literal or if it is the prefix of any entry.
// Everything else is a leaf no other string depends on and is dropped. Kept
// entries are reinserted in ascending code order, so new codes are dense and
// relative order is preserved.
//
// Prefixes are translated to the new numbering as each entry is reinserted.
// An entry referring to itself keeps referring to itself. An entry whose
// prefix has not been renumbered yet, because it points at a later code,
// gets prefix 0. Both rules are part of the stream format: encoder and
// decoder apply them to identical tables and stay in step.
//
// Parameters:
//   - entries: Source entries in code order
//   - dst: Empty table receiving the kept entries
func Compact(entries []Entry, dst Inserter) {
	keep := make([]bool, len(entries))
	for _, e := range entries {
		p, ok := e.Prefix.Get()
		switch {
		case !ok:
			keep[e.Code] = true
		case int(p) < len(entries):
			keep[p] = true
		}
	}

	remap := make([]Code, len(entries))
	for code, e := range entries {
		if !keep[code] {
			continue
		}
		remap[code] = Code(dst.Size())

		prefix := e.Prefix
		if p, ok := prefix.Get(); ok {
			if int(p) < len(remap) {
				prefix = Some(remap[p])
			} else {
				prefix = Some(0)
			}
		}
		dst.Insert(prefix, e.Character)
	}
}
