package bucketarray

import (
	"testing"

	"github.com/gostonefire/arenahash/internal/layout"
	"github.com/stretchr/testify/assert"
)

func newTestArray(count uint32) Buckets {
	buf := make([]byte, layout.BucketArrayHeaderSize+uint64(count)*layout.BucketSize)
	b := New(buf, count)
	b.Init()
	return b
}

func TestInitLeavesAllBucketsEmpty(t *testing.T) {
	t.Run("every bucket is empty after Init", func(t *testing.T) {
		// Prepare
		b := newTestArray(16)

		// Execute / Check
		for i := uint32(0); i < b.Count(); i++ {
			assert.True(t, b.IsEmpty(i), "bucket %d should be empty after Init", i)
		}
	})
}

func TestSetHeadTailRoundTrips(t *testing.T) {
	t.Run("head/tail round-trip without disturbing neighbors", func(t *testing.T) {
		// Prepare
		b := newTestArray(16)

		// Execute
		b.SetHeadTail(3, 100, 200)

		// Check
		head, tail := b.HeadTail(3)
		assert.Equal(t, uint64(100), head)
		assert.Equal(t, uint64(200), tail)
		assert.False(t, b.IsEmpty(3), "bucket 3 should not be empty")
		assert.True(t, b.IsEmpty(2), "neighboring bucket must be unaffected")
		assert.True(t, b.IsEmpty(4), "neighboring bucket must be unaffected")
	})
}
