package arenahash

import "github.com/gostonefire/arenahash/internal/layout"

// Config controls how Create lays a Table out over a buffer. The zero value
// is not a valid Config to pass explicitly — if supplied, both Hash and
// Buckets must be set; pass a nil *Config to Create to get the documented
// defaults instead of assembling a Config by hand.
type Config struct {
	// Hash selects the bucket for a given key. Required when Config is
	// supplied; a nil Hash in a supplied Config is an InvalidError.
	Hash Hasher

	// Buckets is the fixed number of hash buckets in the table. Required
	// when Config is supplied; zero in a supplied Config is an
	// InvalidError.
	Buckets uint32

	// Observer, if non-nil, receives notifications of Insert/Remove/
	// Retrieve outcomes and arena occupancy. A nil Observer disables all
	// instrumentation at zero cost.
	Observer MetricsObserver
}

// defaultBucketCountFraction is the fraction of the whole buffer spent on
// the bucket array when no Config is supplied, per spec.md's default sizing
// note (a bucket array of roughly 12% of the buffer).
const defaultBucketCountFraction = 0.12

// minDefaultBuckets is the floor applied to a derived bucket count so tiny
// buffers don't end up with a degenerate single-bucket table.
const minDefaultBuckets = 10

// deriveDefaultBuckets computes the bucket count used when Create is called
// with a nil Config: roughly defaultBucketCountFraction of bufferSize spent
// on the bucket array, floored at minDefaultBuckets.
func deriveDefaultBuckets(bufferSize int) uint32 {
	target := float64(bufferSize) * defaultBucketCountFraction
	n := (target - float64(layout.BucketArrayHeaderSize)) / float64(layout.BucketSize)
	if n < minDefaultBuckets {
		return minDefaultBuckets
	}
	return uint32(n)
}
