package arenahash

import (
	"bytes"

	"github.com/gostonefire/arenahash/internal/arena"
	"github.com/gostonefire/arenahash/internal/bucketarray"
	"github.com/gostonefire/arenahash/internal/layout"
	"github.com/gostonefire/arenahash/hash"
)

// Hasher is re-exported from the hash package so callers can build a Config
// without importing two packages for one type.
type Hasher = hash.Hasher

// Table is a fixed-memory, separate-chaining associative container backed
// entirely by a caller-supplied byte buffer. Create lays the buffer out
// once; every subsequent operation reads and writes within that same
// buffer, allocating no memory of its own.
type Table struct {
	buf      []byte
	buckets  bucketarray.Buckets
	arena    arena.Arena
	hasher   Hasher
	observer MetricsObserver
}

// Create lays out buf as a new, empty Table and returns it.
//
// If cfg is nil, Create derives a default Hasher (hash.FNV1a) and bucket
// count from len(buf). If cfg is non-nil, both cfg.Hash and cfg.Buckets must
// be set; a nil Hash or zero Buckets is an InvalidError.
//
// Create returns a NoSpaceError if buf is too small to hold the header,
// bucket array and arena header for the resolved bucket count — even with
// zero bytes left over for record data. A buffer exactly at that minimum
// size is accepted here; the first Insert into it will fail with
// NoSpaceError instead.
func Create(buf []byte, cfg *Config) (*Table, error) {
	if buf == nil {
		return nil, newInvalid("nil buffer")
	}

	var hasher Hasher
	var bucketCount uint32
	var observer MetricsObserver

	if cfg == nil {
		hasher = hash.FNV1a()
		bucketCount = deriveDefaultBuckets(len(buf))
	} else {
		if cfg.Hash == nil {
			return nil, newInvalid("nil hash function in a supplied config")
		}
		if cfg.Buckets == 0 {
			return nil, newInvalid("zero bucket count in a supplied config")
		}
		hasher = cfg.Hash
		bucketCount = cfg.Buckets
		observer = cfg.Observer
	}

	required := layout.MinBufferSize(bucketCount)
	if uint64(len(buf)) < required {
		return nil, NoSpaceError{msg: "buffer too small for the requested bucket count"}
	}

	t := &Table{
		buf:      buf,
		hasher:   hasher,
		observer: observer,
	}

	bucketsBuf := buf[layout.BucketArrayOffset:layout.ArenaHeaderOffset(bucketCount)]
	t.buckets = bucketarray.New(bucketsBuf, bucketCount)
	t.buckets.Init()

	arenaBuf := buf[layout.ArenaHeaderOffset(bucketCount):]
	t.arena = arena.New(arenaBuf, layout.ArenaHeaderOffset(bucketCount))
	t.arena.Init(uint64(len(arenaBuf)) - uint64(layout.ArenaHeaderSize))

	layout.EncodeHeader(buf, layout.Header{BucketCount: bucketCount})

	return t, nil
}

// Open reconstructs a Table view over a buffer previously laid out by
// Create (e.g. one restored from a snapshot or a persisted file), without
// re-initializing its contents. The buffer's recorded bucket count is
// trusted as-is; cfg supplies only the Hasher and Observer to use going
// forward (both optional: a nil cfg or nil cfg.Hash falls back to
// hash.FNV1a).
func Open(buf []byte, cfg *Config) (*Table, error) {
	if buf == nil {
		return nil, newInvalid("nil buffer")
	}
	if uint64(len(buf)) < layout.HeaderSize {
		return nil, NoSpaceError{msg: "buffer too small to contain a header"}
	}

	h := layout.DecodeHeader(buf)
	required := layout.MinBufferSize(h.BucketCount)
	if uint64(len(buf)) < required {
		return nil, newInvalid("buffer too small for its own recorded bucket count")
	}

	hasher := hash.FNV1a()
	var observer MetricsObserver
	if cfg != nil {
		if cfg.Hash != nil {
			hasher = cfg.Hash
		}
		observer = cfg.Observer
	}

	t := &Table{buf: buf, hasher: hasher, observer: observer}

	bucketsBuf := buf[layout.BucketArrayOffset:layout.ArenaHeaderOffset(h.BucketCount)]
	t.buckets = bucketarray.New(bucketsBuf, h.BucketCount)

	arenaBuf := buf[layout.ArenaHeaderOffset(h.BucketCount):]
	t.arena = arena.New(arenaBuf, layout.ArenaHeaderOffset(h.BucketCount))

	return t, nil
}

func (t *Table) readHeader() layout.Header {
	return layout.DecodeHeader(t.buf)
}

func (t *Table) writeHeader(h layout.Header) {
	layout.EncodeHeader(t.buf, h)
}

func (t *Table) bucketIndex(key []byte) uint32 {
	h := t.readHeader()
	return t.hasher.Sum32(key) % h.BucketCount
}

// find walks the chain for key's bucket, returning the matching record, the
// address of its predecessor in the chain (0 if it is the chain head), its
// bucket index, and whether a match was found.
func (t *Table) find(key []byte) (rec arena.Record, prevAddr uint64, idx uint32, found bool) {
	idx = t.bucketIndex(key)
	head, _ := t.buckets.HeadTail(idx)

	curr := head
	for curr != 0 {
		candidate := t.arena.RecordAt(curr)
		if int(candidate.KeySize()) == len(key) && bytes.Equal(candidate.Key(), key) {
			return candidate, prevAddr, idx, true
		}
		prevAddr = curr
		curr = candidate.Next()
	}
	return arena.Record{}, 0, idx, false
}

// appendToChain links a freshly allocated record onto the tail of bucket
// idx's chain, updating occupancy counters.
func (t *Table) appendToChain(idx uint32, rec arena.Record, h *layout.Header) {
	head, tail := t.buckets.HeadTail(idx)
	if head == 0 {
		t.buckets.SetHeadTail(idx, rec.Addr(), rec.Addr())
		h.BucketsOccupied++
	} else {
		t.arena.RecordAt(tail).SetNext(rec.Addr())
		t.buckets.SetHeadTail(idx, head, rec.Addr())
	}
	h.EntryCount++
}

// Insert stores value under key, creating the pair if key is new.
//
// If key already maps to a value and the incoming value is no larger than
// the one currently stored, the value is overwritten in place — capacity
// headroom left over from an earlier shrink is not reused for this purpose.
// Otherwise a new record is allocated and appended to the tail of the key's
// bucket chain, and the existing record is unlinked and freed; from the
// caller's perspective this is a single atomic update. If the allocation
// fails, the existing value is left in place.
//
// Insert returns InvalidError for a zero-length key, and NoSpaceError if
// the arena cannot satisfy the allocation a new or grown record requires.
func (t *Table) Insert(key, value []byte) (err error) {
	defer func() { t.notifyInsert(err) }()

	if len(key) == 0 {
		return newInvalid("zero-length key")
	}

	h := t.readHeader()

	rec, _, idx, found := t.find(key)
	if found {
		if uint32(len(value)) <= rec.ValueSize() {
			rec.OverwriteValue(value)
			return nil
		}
	}

	newRec, ok := t.arena.Allocate(uint32(len(key)), uint32(len(value)))
	if !ok {
		return NoSpaceError{msg: "arena exhausted"}
	}
	newRec.Populate(0, key, value)

	if found {
		if err := t.unlink(key, &h); err != nil {
			return err
		}
	}

	t.appendToChain(idx, newRec, &h)
	t.writeHeader(h)
	return nil
}

// unlink removes key's record from its chain and returns it to the free
// list, decrementing h's counters. The caller must already know key is
// present (from a prior find) and must persist h afterward.
func (t *Table) unlink(key []byte, h *layout.Header) error {
	rec, prevAddr, idx, found := t.find(key)
	if !found {
		return NotFoundError{}
	}

	head, tail := t.buckets.HeadTail(idx)
	next := rec.Next()
	if rec.Addr() == head {
		head = next
	}
	if rec.Addr() == tail {
		tail = prevAddr
	}
	if prevAddr != 0 {
		t.arena.RecordAt(prevAddr).SetNext(next)
	}
	t.buckets.SetHeadTail(idx, head, tail)

	t.arena.Free(rec.Addr())
	h.EntryCount--
	if head == 0 {
		h.BucketsOccupied--
	}
	return nil
}

// Remove deletes key's record, if present, returning it to the free list
// for reuse by a future Insert. It returns NotFoundError if key is absent.
func (t *Table) Remove(key []byte) (err error) {
	defer func() { t.notifyRemove(err) }()

	if len(key) == 0 {
		return newInvalid("zero-length key")
	}

	h := t.readHeader()
	if err := t.unlink(key, &h); err != nil {
		return err
	}
	t.writeHeader(h)
	return nil
}

// Retrieve returns the value stored under key. The returned slice aliases
// the table's backing buffer and is invalidated by the next mutating call
// (Insert or Remove). It returns
// NotFoundError if key is absent.
func (t *Table) Retrieve(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, newInvalid("zero-length key")
	}

	rec, _, _, found := t.find(key)
	t.notifyRetrieve(found)
	if !found {
		return nil, NotFoundError{}
	}
	return rec.Value(), nil
}

// HasKey reports whether key is currently present, without returning its
// value.
func (t *Table) HasKey(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	_, _, _, found := t.find(key)
	t.notifyRetrieve(found)
	return found
}

// BytesRemaining returns the number of bytes still available to the arena's
// bump pointer. It does not include free-list capacity, which is not
// contiguous and cannot satisfy an arbitrary future allocation.
func (t *Table) BytesRemaining() uint64 {
	return t.arena.BytesRemaining()
}

// Len returns the number of key/value pairs currently stored.
func (t *Table) Len() uint32 {
	return t.readHeader().EntryCount
}
