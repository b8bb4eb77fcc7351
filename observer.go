package arenahash

// MetricsObserver receives notifications of Table operations and arena
// occupancy. A Table with a nil Observer skips every call site below at
// zero cost; implementations must be cheap and must not call back into the
// Table that is notifying them.
type MetricsObserver interface {
	// OnInsert is called after every Insert attempt, including failures.
	OnInsert(err error)

	// OnRemove is called after every Remove attempt, including
	// NotFoundError.
	OnRemove(err error)

	// OnRetrieve is called after every Retrieve/HasKey lookup.
	OnRetrieve(found bool)

	// OnArenaUsage reports the arena's byte occupancy after any operation
	// that allocates or frees a record.
	OnArenaUsage(usedBytes, totalBytes uint64)

	// OnBucketsOccupied reports how many of the table's buckets currently
	// hold at least one record, after any operation that changes it.
	OnBucketsOccupied(occupied, total uint32)
}

func (t *Table) notifyInsert(err error) {
	if t.observer == nil {
		return
	}
	t.observer.OnInsert(err)
	t.notifyUsage()
}

func (t *Table) notifyRemove(err error) {
	if t.observer == nil {
		return
	}
	t.observer.OnRemove(err)
	t.notifyUsage()
}

func (t *Table) notifyRetrieve(found bool) {
	if t.observer == nil {
		return
	}
	t.observer.OnRetrieve(found)
}

func (t *Table) notifyUsage() {
	h := t.readHeader()
	t.observer.OnArenaUsage(t.arena.BytesUsed(), t.arena.BytesTotal())
	t.observer.OnBucketsOccupied(h.BucketsOccupied, h.BucketCount)
}
