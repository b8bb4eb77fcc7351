// Package layout defines the fixed byte layout of a Table's arena: the
// offsets and widths of the Header, BucketArrayHeader, per-bucket entries,
// ArenaHeader and per-record header, plus the encode/decode helpers that
// read and write them directly in a caller-supplied byte buffer. Unsafe
// byte-offset arithmetic is isolated to this package and internal/arena,
// as spec.md's design notes recommend.
package layout

import "encoding/binary"

// HeaderSize is the size in bytes of the Table header placed at the start
// of the buffer.
const HeaderSize = 32

// Header field offsets, all little-endian.
const (
	headerBucketCountOffset      = 0  // uint32
	headerEntryCountOffset       = 4  // uint32
	headerBucketsOccupiedOffset  = 8  // uint32
	headerCursorBucketOffset     = 12 // uint32
	headerCursorRecordOffset     = 16 // uint64 (record address, 0 = null)
	headerCursorTraversedOffset  = 24 // uint32
	headerCursorExhaustedOffset  = 28 // uint8 (0/1)
	// bytes 29-31 reserved/padding
)

// Header mirrors the Table's configuration, counters, and cursor state as
// stored in the buffer.
type Header struct {
	BucketCount     uint32
	EntryCount      uint32
	BucketsOccupied uint32
	CursorBucket    uint32
	CursorRecord    uint64
	CursorTraversed uint32
	CursorExhausted bool
}

// DecodeHeader reads a Header from the first HeaderSize bytes of buf.
func DecodeHeader(buf []byte) Header {
	return Header{
		BucketCount:     binary.LittleEndian.Uint32(buf[headerBucketCountOffset:]),
		EntryCount:      binary.LittleEndian.Uint32(buf[headerEntryCountOffset:]),
		BucketsOccupied: binary.LittleEndian.Uint32(buf[headerBucketsOccupiedOffset:]),
		CursorBucket:    binary.LittleEndian.Uint32(buf[headerCursorBucketOffset:]),
		CursorRecord:    binary.LittleEndian.Uint64(buf[headerCursorRecordOffset:]),
		CursorTraversed: binary.LittleEndian.Uint32(buf[headerCursorTraversedOffset:]),
		CursorExhausted: buf[headerCursorExhaustedOffset] == 1,
	}
}

// EncodeHeader writes h into the first HeaderSize bytes of buf.
func EncodeHeader(buf []byte, h Header) {
	binary.LittleEndian.PutUint32(buf[headerBucketCountOffset:], h.BucketCount)
	binary.LittleEndian.PutUint32(buf[headerEntryCountOffset:], h.EntryCount)
	binary.LittleEndian.PutUint32(buf[headerBucketsOccupiedOffset:], h.BucketsOccupied)
	binary.LittleEndian.PutUint32(buf[headerCursorBucketOffset:], h.CursorBucket)
	binary.LittleEndian.PutUint64(buf[headerCursorRecordOffset:], h.CursorRecord)
	binary.LittleEndian.PutUint32(buf[headerCursorTraversedOffset:], h.CursorTraversed)
	if h.CursorExhausted {
		buf[headerCursorExhaustedOffset] = 1
	} else {
		buf[headerCursorExhaustedOffset] = 0
	}
}

// BucketArrayHeaderSize is the size in bytes of the small header that
// precedes the bucket entries themselves.
const BucketArrayHeaderSize = 8

const (
	bucketArrayStrideOffset = 0 // uint32, bytes per bucket entry
	// bytes 4-7 reserved
)

// EncodeBucketArrayHeader writes the bucket array header into buf.
func EncodeBucketArrayHeader(buf []byte) {
	binary.LittleEndian.PutUint32(buf[bucketArrayStrideOffset:], BucketSize)
}

// BucketSize is the size in bytes of a single bucket entry: head and tail
// record addresses, both absolute offsets from the start of the buffer
// (0 means "no record").
const BucketSize = 16

const (
	bucketHeadOffset = 0 // uint64
	bucketTailOffset = 8 // uint64
)

// DecodeBucket reads the head/tail addresses of the bucket occupying buf.
func DecodeBucket(buf []byte) (head, tail uint64) {
	head = binary.LittleEndian.Uint64(buf[bucketHeadOffset:])
	tail = binary.LittleEndian.Uint64(buf[bucketTailOffset:])
	return
}

// EncodeBucket writes the head/tail addresses of the bucket occupying buf.
func EncodeBucket(buf []byte, head, tail uint64) {
	binary.LittleEndian.PutUint64(buf[bucketHeadOffset:], head)
	binary.LittleEndian.PutUint64(buf[bucketTailOffset:], tail)
}

// ArenaHeaderSize is the size in bytes of the header preceding the arena
// data region: total/used byte counters and the free-list head/tail.
const ArenaHeaderSize = 32

const (
	arenaTotalOffset    = 0  // uint64
	arenaUsedOffset     = 8  // uint64
	arenaFreeHeadOffset = 16 // uint64 (record address, 0 = null)
	arenaFreeTailOffset = 24 // uint64 (record address, 0 = null)
)

// ArenaHeader mirrors the record allocator's bump pointer and free list.
type ArenaHeader struct {
	Total    uint64
	Used     uint64
	FreeHead uint64
	FreeTail uint64
}

// DecodeArenaHeader reads an ArenaHeader from the first ArenaHeaderSize
// bytes of buf.
func DecodeArenaHeader(buf []byte) ArenaHeader {
	return ArenaHeader{
		Total:    binary.LittleEndian.Uint64(buf[arenaTotalOffset:]),
		Used:     binary.LittleEndian.Uint64(buf[arenaUsedOffset:]),
		FreeHead: binary.LittleEndian.Uint64(buf[arenaFreeHeadOffset:]),
		FreeTail: binary.LittleEndian.Uint64(buf[arenaFreeTailOffset:]),
	}
}

// EncodeArenaHeader writes h into the first ArenaHeaderSize bytes of buf.
func EncodeArenaHeader(buf []byte, h ArenaHeader) {
	binary.LittleEndian.PutUint64(buf[arenaTotalOffset:], h.Total)
	binary.LittleEndian.PutUint64(buf[arenaUsedOffset:], h.Used)
	binary.LittleEndian.PutUint64(buf[arenaFreeHeadOffset:], h.FreeHead)
	binary.LittleEndian.PutUint64(buf[arenaFreeTailOffset:], h.FreeTail)
}

// RecordHeaderSize is the size in bytes of the fixed part of a record:
// the chain/free-list link, the live key/value lengths, and the record's
// original key+value byte capacity. Key and value bytes follow immediately
// after, back to back.
//
// Capacity is tracked separately from key_size/value_size because a value
// may shrink in place (value_size decreases) without the record's footprint
// shrinking; first-fit free-list matching must compare against the
// original capacity, not the live, possibly-shrunk, value_size (see
// DESIGN.md).
const RecordHeaderSize = 20

const (
	recordNextOffset      = 0  // uint64 (record address, 0 = null)
	recordKeySizeOffset   = 8  // uint32
	recordValueSizeOffset = 12 // uint32
	recordCapacityOffset  = 16 // uint32 (original key_size + value_size at allocation time)
)

// DecodeRecordHeader reads the fixed header of the record occupying buf.
func DecodeRecordHeader(buf []byte) (next uint64, keySize, valueSize, capacity uint32) {
	next = binary.LittleEndian.Uint64(buf[recordNextOffset:])
	keySize = binary.LittleEndian.Uint32(buf[recordKeySizeOffset:])
	valueSize = binary.LittleEndian.Uint32(buf[recordValueSizeOffset:])
	capacity = binary.LittleEndian.Uint32(buf[recordCapacityOffset:])
	return
}

// EncodeRecordHeader writes the fixed header of a record into buf.
func EncodeRecordHeader(buf []byte, next uint64, keySize, valueSize, capacity uint32) {
	binary.LittleEndian.PutUint64(buf[recordNextOffset:], next)
	binary.LittleEndian.PutUint32(buf[recordKeySizeOffset:], keySize)
	binary.LittleEndian.PutUint32(buf[recordValueSizeOffset:], valueSize)
	binary.LittleEndian.PutUint32(buf[recordCapacityOffset:], capacity)
}

// SetRecordValueSize rewrites only the value-size field of a record header,
// used for the in-place-shrink overwrite path that must not disturb key
// bytes or the record's capacity/footprint.
func SetRecordValueSize(buf []byte, valueSize uint32) {
	binary.LittleEndian.PutUint32(buf[recordValueSizeOffset:], valueSize)
}

// RecordFootprint returns the total number of bytes a record with the given
// key+value capacity occupies in the arena, header included.
func RecordFootprint(capacity uint32) uint64 {
	return uint64(RecordHeaderSize) + uint64(capacity)
}

// MinBufferSize returns the minimum buffer size, in bytes, required to
// create a table with the given number of buckets and zero arena data
// capacity — HASHTABLE_MIN_BUFFER_SIZE(N) from spec.md §8's boundary
// behaviors.
func MinBufferSize(bucketCount uint32) uint64 {
	return uint64(HeaderSize) + uint64(BucketArrayHeaderSize) +
		uint64(bucketCount)*uint64(BucketSize) + uint64(ArenaHeaderSize)
}

// BucketArrayOffset is the offset of the bucket array header within the
// buffer; it immediately follows the Header.
const BucketArrayOffset = HeaderSize

// BucketsOffset returns the offset of the first bucket entry, immediately
// following the bucket array header.
func BucketsOffset() uint64 {
	return uint64(BucketArrayOffset) + uint64(BucketArrayHeaderSize)
}

// ArenaHeaderOffset returns the offset of the ArenaHeader given the number
// of buckets in the table.
func ArenaHeaderOffset(bucketCount uint32) uint64 {
	return BucketsOffset() + uint64(bucketCount)*uint64(BucketSize)
}

// ArenaDataOffset returns the offset of the first byte of arena data (past
// the ArenaHeader) given the number of buckets in the table.
func ArenaDataOffset(bucketCount uint32) uint64 {
	return ArenaHeaderOffset(bucketCount) + uint64(ArenaHeaderSize)
}
