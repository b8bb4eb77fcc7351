// Package arena implements spec.md's Record Allocator: a bump pointer over
// untouched arena bytes, backed by a FIFO, first-fit free list of records
// that have been unlinked from a chain. Allocation never merges, splits, or
// compacts; the bump pointer never retreats; free-listed capacity is reused
// in place, never returned to the bump region.
package arena

import "github.com/gostonefire/arenahash/internal/layout"

// Arena wraps the ArenaHeader-plus-data region of a Table's buffer. Record
// addresses it hands out are absolute offsets from the start of the whole
// Table buffer (base + local offset within buf), matching the addresses
// stored in bucket heads/tails and record next-links.
type Arena struct {
	buf  []byte // ArenaHeader followed by arena data, sliced from the Table's buffer
	base uint64 // offset of buf[0] within the Table's buffer
}

// New returns an Arena view over buf (which starts at the ArenaHeader and
// runs to the end of the Table's buffer), anchored at base.
func New(buf []byte, base uint64) Arena {
	return Arena{buf: buf, base: base}
}

// Init zeroes the arena header and declares total as the number of bytes
// available for record data (i.e. len(buf) - layout.ArenaHeaderSize).
func (a Arena) Init(total uint64) {
	for i := 0; i < layout.ArenaHeaderSize; i++ {
		a.buf[i] = 0
	}
	layout.EncodeArenaHeader(a.buf, layout.ArenaHeader{Total: total})
}

func (a Arena) header() layout.ArenaHeader {
	return layout.DecodeArenaHeader(a.buf)
}

func (a Arena) setHeader(h layout.ArenaHeader) {
	layout.EncodeArenaHeader(a.buf, h)
}

// BytesUsed returns the number of bytes the bump pointer has advanced
// across; it never decreases, even when records are freed.
func (a Arena) BytesUsed() uint64 {
	return a.header().Used
}

// BytesTotal returns the total number of bytes available for record data.
func (a Arena) BytesTotal() uint64 {
	return a.header().Total
}

// BytesRemaining returns the bytes still available to the bump pointer.
// It deliberately excludes free-list capacity: free-list space is not
// contiguous and cannot satisfy an arbitrary future allocation.
func (a Arena) BytesRemaining() uint64 {
	h := a.header()
	return h.Total - h.Used
}

// RecordAt returns a view of the record at addr. addr must be a value
// previously returned by Allocate (directly, or via a bucket head/tail or
// another record's Next link).
func (a Arena) RecordAt(addr uint64) Record {
	local := addr - a.base
	head := a.buf[local : local+layout.RecordHeaderSize]
	_, _, _, capacity := layout.DecodeRecordHeader(head)
	footprint := layout.RecordFootprint(capacity)
	return Record{addr: addr, buf: a.buf[local : local+footprint]}
}

// Allocate reserves space for a record able to hold a key of keySize bytes
// and a value of valueSize bytes. It first walks the free list head to
// tail, first-fit, returning the first freed record whose original
// capacity suffices; failing that, it carves size_required fresh bytes off
// the bump pointer. ok is false if neither source has room ("no_space").
func (a Arena) Allocate(keySize, valueSize uint32) (rec Record, ok bool) {
	sizeRequired := layout.RecordFootprint(keySize + valueSize)

	h := a.header()
	var prevAddr uint64
	curr := h.FreeHead
	for curr != 0 {
		candidate := a.RecordAt(curr)
		next := candidate.Next()
		if candidate.Footprint() >= sizeRequired {
			if curr == h.FreeHead {
				h.FreeHead = next
			}
			if curr == h.FreeTail {
				h.FreeTail = prevAddr
			}
			if prevAddr != 0 {
				a.RecordAt(prevAddr).SetNext(next)
			}
			candidate.SetNext(0)
			a.setHeader(h)
			return candidate, true
		}
		prevAddr = curr
		curr = next
	}

	remaining := h.Total - h.Used
	if sizeRequired > remaining {
		return Record{}, false
	}

	localStart := uint64(layout.ArenaHeaderSize) + h.Used
	rec = Record{addr: a.base + localStart, buf: a.buf[localStart : localStart+sizeRequired]}
	rec.initCapacity(keySize + valueSize)

	h.Used += sizeRequired
	a.setHeader(h)

	return rec, true
}

// FreeListLength walks the free list and returns the number of records
// currently sitting on it, for diagnostics (Table.Stat). This is O(free
// list length); it is not called from any hot path.
func (a Arena) FreeListLength() uint32 {
	var n uint32
	curr := a.header().FreeHead
	for curr != 0 {
		n++
		curr = a.RecordAt(curr).Next()
	}
	return n
}

// Free appends the record at addr to the tail of the free list. It does
// not merge, compact, or split; free-list ordering is FIFO, matching the
// first-fit Allocate walk above.
func (a Arena) Free(addr uint64) {
	record := a.RecordAt(addr)
	record.SetNext(0)

	h := a.header()
	if h.FreeHead == 0 {
		h.FreeHead = addr
		h.FreeTail = addr
	} else {
		a.RecordAt(h.FreeTail).SetNext(addr)
		h.FreeTail = addr
	}
	a.setHeader(h)
}
