// Package bucketarray wraps the fixed-length array of chain heads/tails
// that spec.md's Bucket Array subsystem describes: one entry per hash slot,
// both null when the bucket is empty, lifetime equal to the Table's.
package bucketarray

import "github.com/gostonefire/arenahash/internal/layout"

// Buckets is a view over the bucket-array region of a Table's buffer: the
// small array header plus N fixed-size bucket entries.
type Buckets struct {
	buf   []byte // the bucket array header + N entries, sliced from the Table's buffer
	count uint32
}

// New returns a Buckets view over buf, which must be exactly
// layout.BucketArrayHeaderSize + count*layout.BucketSize bytes long.
func New(buf []byte, count uint32) Buckets {
	return Buckets{buf: buf, count: count}
}

// Init zeroes the array header and all bucket entries, leaving every
// bucket empty (head == tail == 0).
func (b Buckets) Init() {
	for i := range b.buf {
		b.buf[i] = 0
	}
	layout.EncodeBucketArrayHeader(b.buf)
}

// Count returns the number of buckets in the array.
func (b Buckets) Count() uint32 {
	return b.count
}

// entry returns the byte slice backing bucket index i.
func (b Buckets) entry(i uint32) []byte {
	start := uint64(layout.BucketArrayHeaderSize) + uint64(i)*uint64(layout.BucketSize)
	return b.buf[start : start+uint64(layout.BucketSize)]
}

// HeadTail returns the head and tail record addresses for bucket i. Both
// are 0 when the bucket is empty.
func (b Buckets) HeadTail(i uint32) (head, tail uint64) {
	return layout.DecodeBucket(b.entry(i))
}

// SetHeadTail sets the head and tail record addresses for bucket i.
func (b Buckets) SetHeadTail(i uint32, head, tail uint64) {
	layout.EncodeBucket(b.entry(i), head, tail)
}

// IsEmpty reports whether bucket i currently has no records chained to it.
func (b Buckets) IsEmpty(i uint32) bool {
	head, _ := b.HeadTail(i)
	return head == 0
}
