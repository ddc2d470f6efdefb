package table

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lzw/format"
)

func TestPrefix(t *testing.T) {
	require.True(t, None.IsNone())
	require.Equal(t, "-1", None.String())

	p := Some(0)
	require.False(t, p.IsNone())
	code, ok := p.Get()
	require.True(t, ok)
	require.Equal(t, Code(0), code)
	require.Equal(t, "0", p.String())
	require.NotEqual(t, None, p, "code 0 must be distinct from the empty prefix")
}

func TestHashKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix Prefix
		c      byte
		want   uint64
	}{
		{"literal", None, 'A', 0xb014ff6868221210},
		{"zero code zero byte", Some(0), 0, 0xa8c7f832281a39c5},
		{"wide code", Some(300), 255, 0x5f4d3cce6d731321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, hashKey(tt.prefix, tt.c))
		})
	}
}

func TestCompressionTable_InsertGet(t *testing.T) {
	tbl := NewSeededCompressionTable(512)
	require.Equal(t, format.LiteralCount, tbl.Size())
	require.Equal(t, 512, tbl.MaxSize())

	for c := range format.LiteralCount {
		e, ok := tbl.Get(None, byte(c))
		require.True(t, ok)
		require.Equal(t, Literal(byte(c)), e.Code)
		require.True(t, e.IsLiteral())
	}

	code, ok := tbl.Insert(Some('A'), 'B')
	require.True(t, ok)
	require.Equal(t, Code(256), code)

	e, ok := tbl.Get(Some('A'), 'B')
	require.True(t, ok)
	require.Equal(t, Entry{Prefix: Some('A'), Character: 'B', Code: 256}, e)

	_, ok = tbl.Get(Some('B'), 'A')
	require.False(t, ok)
	_, ok = tbl.Get(Some(256), 'B')
	require.False(t, ok)

	require.NoError(t, tbl.Verify())
}

func TestCompressionTable_FullInsertIsNoOp(t *testing.T) {
	tbl := NewCompressionTable(3)
	for c := range 3 {
		_, ok := tbl.Insert(None, byte(c))
		require.True(t, ok)
	}
	require.True(t, tbl.Full())

	_, ok := tbl.Insert(None, 9)
	require.False(t, ok)
	require.Equal(t, 3, tbl.Size())
	_, ok = tbl.Get(None, 9)
	require.False(t, ok)
}

func TestCompressionTable_Collisions(t *testing.T) {
	tbl := NewCompressionTable(16)
	tbl.buckets = []int32{-1} // force every key into one chain

	for c := range 16 {
		_, ok := tbl.Insert(None, byte(c))
		require.True(t, ok)
		require.Equal(t, int32(c), tbl.buckets[0], "newest entry heads the chain")
	}
	for c := range 16 {
		e, ok := tbl.Get(None, byte(c))
		require.True(t, ok)
		require.Equal(t, Code(c), e.Code)
	}
}

func TestDecompressionTable_InsertGet(t *testing.T) {
	tbl := NewSeededDecompressionTable(258)

	_, ok := tbl.Get(256)
	require.False(t, ok)

	code, ok := tbl.Insert(Some('A'), 'B')
	require.True(t, ok)
	require.Equal(t, Code(256), code)
	code, ok = tbl.Insert(Some(256), 'C')
	require.True(t, ok)
	require.Equal(t, Code(257), code)

	_, ok = tbl.Insert(Some(257), 'D')
	require.False(t, ok, "insert into a full table is a no-op")
	require.Equal(t, 258, tbl.Size())

	e, ok := tbl.Get(257)
	require.True(t, ok)
	require.Equal(t, Some(256), e.Prefix)
	require.Equal(t, byte('C'), e.Character)

	root, ok := tbl.Root(257)
	require.True(t, ok)
	require.Equal(t, byte('A'), root)

	_, ok = tbl.Root(400)
	require.False(t, ok)

	require.NoError(t, tbl.Verify())
}

// buildBoth inserts the same rows into fresh seeded tables of both kinds.
func buildBoth(maxSize int, rows []Entry) (*CompressionTable, *DecompressionTable) {
	ct := NewSeededCompressionTable(maxSize)
	dt := NewSeededDecompressionTable(maxSize)
	for _, r := range rows {
		ct.Insert(r.Prefix, r.Character)
		dt.Insert(r.Prefix, r.Character)
	}

	return ct, dt
}

func TestPrune(t *testing.T) {
	tests := []struct {
		name     string
		rows     []Entry
		wantTail []Entry
	}{
		{
			name: "leaves dropped",
			rows: []Entry{
				{Prefix: Some('A'), Character: 'B'}, // 256 "AB", prefix of 257
				{Prefix: Some(256), Character: 'C'}, // 257 "ABC", prefix of 259
				{Prefix: Some('B'), Character: 'D'}, // 258 "BD", leaf
				{Prefix: Some(257), Character: 'E'}, // 259 "ABCE", leaf
			},
			wantTail: []Entry{
				{Prefix: Some('A'), Character: 'B', Code: 256},
				{Prefix: Some(256), Character: 'C', Code: 257},
			},
		},
		{
			name: "renumbered prefixes",
			rows: []Entry{
				{Prefix: Some('A'), Character: 'B'}, // 256 leaf
				{Prefix: Some('C'), Character: 'D'}, // 257 prefix of 258 and 259
				{Prefix: Some(257), Character: 'E'}, // 258 leaf
				{Prefix: Some(257), Character: 'F'}, // 259 leaf
			},
			wantTail: []Entry{
				{Prefix: Some('C'), Character: 'D', Code: 256},
			},
		},
		{
			name: "forward prefix maps to zero and self reference stays",
			rows: []Entry{
				{Prefix: Some(259), Character: 'x'}, // 256 points ahead, prefix of 258
				{Prefix: Some(257), Character: 'z'}, // 257 names itself
				{Prefix: Some(256), Character: 'y'}, // 258 leaf
				{Prefix: Some('A'), Character: 'B'}, // 259 prefix of 256
			},
			wantTail: []Entry{
				{Prefix: Some(0), Character: 'x', Code: 256},
				{Prefix: Some(257), Character: 'z', Code: 257},
				{Prefix: Some('A'), Character: 'B', Code: 258},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, dt := buildBoth(260, tt.rows)
			require.True(t, ct.Full())
			require.True(t, dt.Full())

			prunedC := ct.Prune()
			prunedD := dt.Prune()

			require.Equal(t, format.LiteralCount+len(tt.wantTail), prunedC.Size())
			require.Equal(t, prunedC.Entries(), prunedD.Entries())
			require.Equal(t, tt.wantTail, prunedD.Entries()[format.LiteralCount:])
			require.Equal(t, 260, prunedC.MaxSize())

			require.NoError(t, prunedC.Verify())
			require.NoError(t, prunedD.Verify())

			// the source tables are untouched
			require.Equal(t, 260, ct.Size())
			require.Equal(t, 260, dt.Size())
		})
	}
}

func TestPrune_InsertAfterPrune(t *testing.T) {
	rows := []Entry{
		{Prefix: Some('A'), Character: 'B'}, // 256 "AB", prefix of 257
		{Prefix: Some(256), Character: 'C'}, // 257 "ABC", leaf
		{Prefix: Some('X'), Character: 'Y'}, // 258 "XY", leaf
		{Prefix: Some('Q'), Character: 'R'}, // 259 "QR", leaf
	}
	ct, dt := buildBoth(260, rows)
	prunedC := ct.Prune()
	prunedD := dt.Prune()
	require.Equal(t, 257, prunedD.Size())

	// the coder inserts with its pre-prune code, 258, which the new table
	// does not hold yet
	code, ok := prunedC.Insert(Some(258), 'Z')
	require.True(t, ok)
	require.Equal(t, Code(257), code)
	prunedD.Insert(Some(258), 'Z')

	found, ok := prunedC.Get(Some(258), 'Z')
	require.True(t, ok)
	require.Equal(t, Code(257), found.Code)

	_, ok = prunedD.Root(257)
	require.False(t, ok, "prefix 258 does not exist yet")
	require.Error(t, prunedD.Verify())

	// once code 258 exists the entry resolves through it
	prunedD.Insert(Some('M'), 'N')
	root, ok := prunedD.Root(257)
	require.True(t, ok)
	require.Equal(t, byte('M'), root)
	require.NoError(t, prunedD.Verify())
	require.Equal(t, "MNZ", string(expand(prunedD.Entries(), prunedD.Entries()[257], nil)))

	// an entry naming itself never reaches a literal
	prunedD.Insert(Some(259), 'S')
	_, ok = prunedD.Root(259)
	require.False(t, ok)
	require.Equal(t, "S", string(expand(prunedD.Entries(), prunedD.Entries()[259], nil)))
}

func TestPrune_DuplicateKeys(t *testing.T) {
	rows := []Entry{
		{Prefix: Some(259), Character: 'x'}, // 256 points ahead, prefix of 257
		{Prefix: Some(256), Character: 'y'}, // 257 leaf
		{Prefix: Some(0), Character: 'x'},   // 258 "\x00x", prefix of 259
		{Prefix: Some(258), Character: 'q'}, // 259 prefix of 256
	}
	ct, _ := buildBoth(260, rows)

	// 256 becomes (0, 'x'), the same key as 258; the newer entry wins lookups
	pruned := ct.Prune()
	require.NoError(t, pruned.Verify())
	found, ok := pruned.Get(Some(0), 'x')
	require.True(t, ok)
	require.Equal(t, Code(257), found.Code)
}

func TestPrune_RandomTables(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := range 20 {
		maxSize := 300 + rng.Intn(2000)
		ct := NewSeededCompressionTable(maxSize)
		dt := NewSeededDecompressionTable(maxSize)
		for !ct.Full() {
			prefix := Some(Code(rng.Intn(ct.Size())))
			c := byte(rng.Intn(8))
			if _, exists := ct.Get(prefix, c); exists {
				continue
			}
			ct.Insert(prefix, c)
			dt.Insert(prefix, c)
		}
		require.NoError(t, ct.Verify())

		prunedC := ct.Prune()
		prunedD := dt.Prune()

		require.NoError(t, prunedC.Verify(), "round %d", round)
		require.NoError(t, prunedD.Verify(), "round %d", round)
		require.Equal(t, prunedC.Entries(), prunedD.Entries())
		require.Less(t, prunedD.Size(), maxSize)

		// every surviving string existed before, and every string that was
		// another entry's prefix survived
		before := stringsOf(dt.Entries())
		after := stringsOf(prunedD.Entries())
		for s := range after {
			require.Contains(t, before, s)
		}
		for _, e := range dt.Entries() {
			if p, ok := e.Prefix.Get(); ok {
				prefixString := string(expand(dt.Entries(), dt.Entries()[p], nil))
				require.Contains(t, after, prefixString)
			}
		}

		// prefix+byte lookups keep working in the rebuilt hash index
		for _, e := range prunedD.Entries() {
			found, ok := prunedC.Get(e.Prefix, e.Character)
			require.True(t, ok)
			require.Equal(t, e.Code, found.Code)
		}
	}
}

func stringsOf(entries []Entry) map[string]struct{} {
	out := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		out[string(expand(entries, e, nil))] = struct{}{}
	}

	return out
}

func TestCheck(t *testing.T) {
	good := NewSeededDecompressionTable(300)
	good.Insert(Some(10), 'x')
	require.NoError(t, Check(good.Entries(), 300))

	t.Run("too large", func(t *testing.T) {
		err := Check(good.Entries(), 256)
		var invErr *InvariantError
		require.ErrorAs(t, err, &invErr)
		require.Contains(t, err.Error(), "exceeds max size")
	})

	t.Run("missing literals", func(t *testing.T) {
		require.Error(t, Check(good.Entries()[:10], 300))
	})

	t.Run("dangling reference", func(t *testing.T) {
		entries := append([]Entry{}, good.Entries()...)
		entries = append(entries, Entry{Prefix: Some(400), Character: 'y', Code: 257})
		err := Check(entries, 300)
		require.ErrorContains(t, err, "dangling prefix reference")
	})

	t.Run("forward and self references", func(t *testing.T) {
		entries := append([]Entry{}, good.Entries()...)
		entries = append(entries,
			Entry{Prefix: Some(258), Character: 'y', Code: 257},
			Entry{Prefix: Some(258), Character: 'z', Code: 258},
		)
		require.NoError(t, Check(entries, 300))
	})

	t.Run("gap in codes", func(t *testing.T) {
		entries := append([]Entry{}, good.Entries()...)
		entries = append(entries, Entry{Prefix: Some(1), Character: 'y', Code: 300})
		require.ErrorContains(t, Check(entries, 400), "out of place")
	})

	t.Run("extra literal", func(t *testing.T) {
		entries := append([]Entry{}, good.Entries()...)
		entries = append(entries, Entry{Prefix: None, Character: 'y', Code: 257})
		require.ErrorContains(t, Check(entries, 400), "duplicate literal")
	})
}

func TestDump(t *testing.T) {
	tbl := NewSeededDecompressionTable(512)
	tbl.Insert(Some('A'), 'B')
	tbl.Insert(Some(256), 'C')

	var out bytes.Buffer
	require.NoError(t, Dump(&out, tbl.Entries()))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2+258)
	require.Equal(t, "String Table Dump", lines[0])
	require.Equal(t, "Code    \tPrefix  \tCharacter   \tString  ", lines[1])
	require.Equal(t, "65      \t-1      \t65          \t65      ", lines[2+65])
	require.Equal(t, "256     \t65      \t66          \t65 66   ", lines[2+256])
	require.Equal(t, "257     \t256     \t67          \t65 66 67 ", lines[2+257])
}

func BenchmarkCompressionTable_Get(b *testing.B) {
	tbl := NewSeededCompressionTable(1 << 16)
	for !tbl.Full() {
		n := tbl.Size()
		tbl.Insert(Some(Code(n/3)), byte(n))
	}

	b.ResetTimer()
	for b.Loop() {
		for c := range 256 {
			tbl.Get(Some(Code(c*7)), byte(c))
		}
	}
}
