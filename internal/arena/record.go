package arena

import "github.com/gostonefire/arenahash/internal/layout"

// Record is a view over a single key/value record living at some address
// in a Table's buffer: [next | key_size | value_size | capacity | key_bytes | value_bytes].
// Once carved out by Allocate, a record's capacity (the key+value byte span
// originally reserved for it) never changes for the remainder of its
// residency in the arena — only its stored value_size and value bytes may
// shrink; growing is implemented as remove-then-reinsert at a new address.
type Record struct {
	addr uint64
	buf  []byte // the record's full footprint, sliced from the arena
}

// Addr returns the record's address: an absolute offset from the start of
// the table buffer, stable for the record's lifetime at this location.
func (r Record) Addr() uint64 {
	return r.addr
}

// Next returns the address of the next record in the same chain (bucket
// chain or free list), or 0 if this is the last record.
func (r Record) Next() uint64 {
	next, _, _, _ := layout.DecodeRecordHeader(r.buf)
	return next
}

// SetNext updates the chain/free-list link.
func (r Record) SetNext(next uint64) {
	_, keySize, valueSize, capacity := layout.DecodeRecordHeader(r.buf)
	layout.EncodeRecordHeader(r.buf, next, keySize, valueSize, capacity)
}

// KeySize returns the length in bytes of the stored key.
func (r Record) KeySize() uint32 {
	_, keySize, _, _ := layout.DecodeRecordHeader(r.buf)
	return keySize
}

// ValueSize returns the length in bytes of the currently stored value. This
// may be smaller than the record's original capacity if the value has been
// shrunk in place.
func (r Record) ValueSize() uint32 {
	_, _, valueSize, _ := layout.DecodeRecordHeader(r.buf)
	return valueSize
}

// Capacity returns the total key+value byte span this record was
// originally carved for. It never changes after allocation.
func (r Record) Capacity() uint32 {
	_, _, _, capacity := layout.DecodeRecordHeader(r.buf)
	return capacity
}

// Footprint returns the total number of bytes this record occupies in the
// arena, header included.
func (r Record) Footprint() uint64 {
	return layout.RecordFootprint(r.Capacity())
}

// Key returns the record's key bytes. The slice aliases the arena's backing
// buffer and must not be retained past the next mutating Table call.
func (r Record) Key() []byte {
	keySize := r.KeySize()
	start := layout.RecordHeaderSize
	return r.buf[start : start+int(keySize)]
}

// Value returns the record's currently stored value bytes, sized to
// ValueSize (not to the record's original capacity). The slice aliases the
// arena's backing buffer and must not be retained past the next mutating
// Table call.
func (r Record) Value() []byte {
	keySize, valueSize := r.KeySize(), r.ValueSize()
	start := layout.RecordHeaderSize + int(keySize)
	return r.buf[start : start+int(valueSize)]
}

// FitsValue reports whether a value of the given size can be written into
// this record in place, i.e. without exceeding the key+value capacity it
// was originally carved with.
func (r Record) FitsValue(valueSize uint32) bool {
	return uint32(len(r.Key()))+valueSize <= r.Capacity()
}

// initCapacity stamps a freshly bump-allocated record's capacity. It must
// be called exactly once, immediately after carving new arena space and
// before the first Populate, and never again for the life of the record at
// this address — capacity is fixed at first allocation.
func (r Record) initCapacity(capacity uint32) {
	layout.EncodeRecordHeader(r.buf, 0, 0, 0, capacity)
}

// Populate writes key, value and the next link into this record's
// footprint. Capacity is left untouched: on a freshly carved record it was
// already stamped by initCapacity; on a free-list reuse it already holds
// the capacity from the record's original allocation. The caller guarantees
// len(key)+len(value) <= Capacity().
func (r Record) Populate(next uint64, key, value []byte) {
	capacity := r.Capacity()
	layout.EncodeRecordHeader(r.buf, next, uint32(len(key)), uint32(len(value)), capacity)
	start := layout.RecordHeaderSize
	copy(r.buf[start:start+len(key)], key)
	if len(value) > 0 {
		copy(r.buf[start+len(key):start+len(key)+len(value)], value)
	}
}

// OverwriteValue replaces the stored value with a smaller-or-equal-size
// value, updating value_size but never the record's key bytes, capacity or
// footprint. The caller must have already checked FitsValue.
func (r Record) OverwriteValue(value []byte) {
	keySize := r.KeySize()
	layout.SetRecordValueSize(r.buf, uint32(len(value)))
	start := layout.RecordHeaderSize + int(keySize)
	copy(r.buf[start:start+len(value)], value)
}
