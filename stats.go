package lzw

// Stats is a snapshot of an Encoder's or Decoder's progress.
type Stats struct {
	MaxBits       int   // table bound from configuration or header
	Width         int   // current code width in bits
	TableSize     int   // entries in the live table
	PeakTableSize int   // largest table size observed
	Prunes        int   // number of prunes performed
	Codes         int64 // codes emitted or consumed
	BytesIn       int64 // bytes consumed
	BytesOut      int64 // bytes produced
}

// Ratio returns BytesOut / BytesIn, or 0 before any input.
func (s Stats) Ratio() float64 {
	if s.BytesIn == 0 {
		return 0
	}

	return float64(s.BytesOut) / float64(s.BytesIn)
}
