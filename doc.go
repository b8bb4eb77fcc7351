// Package arenahash implements a fixed-memory, separate-chaining
// associative container over a single caller-supplied byte buffer. It
// performs zero dynamic allocation after Create, owns no storage of its
// own, and never resizes or rehashes: the buffer's size and bucket count
// are fixed for the Table's lifetime.
//
// A Table lays its buffer out left to right as a Header, a Bucket Array,
// and an Arena. The Arena is a bump-pointer allocator backed by a FIFO,
// first-fit free list: once a record is carved out of the arena at a given
// address, its capacity for key+value bytes never changes for the rest of
// its residency there, even as the live value shrinks in place or the
// record is freed and later reused for a different key.
//
// A Table is not safe for concurrent use; it is owned by a single logical
// actor at a time, matching the single-threaded scheduling model the
// original C implementation assumes.
package arenahash
