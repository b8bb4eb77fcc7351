package arenahash

// TableStats summarizes a table's current occupancy, for diagnostics and
// the arenahashctl stat command. It is a point-in-time snapshot,
// never retained or updated after Stat returns.
type TableStats struct {
	BucketCount     uint32
	EntryCount      uint32
	BucketsOccupied uint32
	BytesTotal      uint64
	BytesUsed       uint64
	BytesRemaining  uint64
	FreeListLength  uint32

	// ChainLengths is the number of records chained to each bucket, indexed
	// by bucket index. It is only populated when Stat is called with
	// includeDistribution set to true, since walking every chain is O(entry
	// count) and most callers only want the aggregate counters above.
	ChainLengths []uint32
}

// Stat reports the table's current occupancy. Set includeDistribution to
// additionally walk every bucket's chain and report per-bucket chain
// lengths in the returned ChainLengths; leave it false to skip the chain
// walk (FreeListLength is still counted by walking the free list).
func (t *Table) Stat(includeDistribution bool) TableStats {
	h := t.readHeader()

	stats := TableStats{
		BucketCount:     h.BucketCount,
		EntryCount:      h.EntryCount,
		BucketsOccupied: h.BucketsOccupied,
		BytesTotal:      t.arena.BytesTotal(),
		BytesUsed:       t.arena.BytesUsed(),
		BytesRemaining:  t.arena.BytesRemaining(),
		FreeListLength:  t.arena.FreeListLength(),
	}

	if includeDistribution {
		stats.ChainLengths = make([]uint32, h.BucketCount)
		for i := uint32(0); i < h.BucketCount; i++ {
			var n uint32
			curr, _ := t.buckets.HeadTail(i)
			for curr != 0 {
				n++
				curr = t.arena.RecordAt(curr).Next()
			}
			stats.ChainLengths[i] = n
		}
	}

	return stats
}
