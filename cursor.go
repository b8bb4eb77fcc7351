package arenahash

// Next advances the table's single iteration cursor and returns the next
// live key/value pair, visiting each bucket in ascending index order and
// each bucket's chain in insertion order. A pair is visited at most once
// per full pass regardless of inserts/removes elsewhere in the table made
// between calls, as long as they don't touch the bucket currently being
// walked. Once every entry has been visited, Next returns NotFoundError on
// every subsequent call until Reset.
//
// The returned slices alias the table's backing buffer and are invalidated
// by the next mutating call.
func (t *Table) Next() (key, value []byte, err error) {
	h := t.readHeader()
	if h.CursorExhausted {
		return nil, nil, NotFoundError{msg: "cursor exhausted"}
	}

	for h.CursorBucket < h.BucketCount && h.CursorTraversed < h.EntryCount {
		if h.CursorRecord == 0 {
			head, _ := t.buckets.HeadTail(h.CursorBucket)
			h.CursorRecord = head
		}

		if h.CursorRecord != 0 {
			rec := t.arena.RecordAt(h.CursorRecord)
			key, value = rec.Key(), rec.Value()

			next := rec.Next()
			h.CursorRecord = next
			if next == 0 {
				h.CursorBucket++
			}
			h.CursorTraversed++
			t.writeHeader(h)
			return key, value, nil
		}

		h.CursorBucket++
	}

	h.CursorExhausted = true
	t.writeHeader(h)
	return nil, nil, NotFoundError{msg: "cursor exhausted"}
}

// Reset rewinds the iteration cursor to the beginning of the table, so the
// next call to Next starts a fresh pass over every currently live entry.
func (t *Table) Reset() {
	h := t.readHeader()
	h.CursorBucket = 0
	h.CursorRecord = 0
	h.CursorTraversed = 0
	h.CursorExhausted = false
	t.writeHeader(h)
}
