package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRoundTrip(t *testing.T) {
	t.Run("header fields survive encode/decode", func(t *testing.T) {
		// Prepare
		buf := make([]byte, HeaderSize)
		want := Header{
			BucketCount:     17,
			EntryCount:      3,
			BucketsOccupied: 2,
			CursorBucket:    5,
			CursorRecord:    1024,
			CursorTraversed: 1,
			CursorExhausted: true,
		}

		// Execute
		EncodeHeader(buf, want)
		got := DecodeHeader(buf)

		// Check
		assert.Equal(t, want, got)
	})
}

func TestBucketRoundTrip(t *testing.T) {
	t.Run("head/tail survive encode/decode", func(t *testing.T) {
		// Prepare
		buf := make([]byte, BucketSize)

		// Execute
		EncodeBucket(buf, 42, 99)
		head, tail := DecodeBucket(buf)

		// Check
		assert.Equal(t, uint64(42), head)
		assert.Equal(t, uint64(99), tail)
	})
}

func TestArenaHeaderRoundTrip(t *testing.T) {
	t.Run("arena counters survive encode/decode", func(t *testing.T) {
		// Prepare
		buf := make([]byte, ArenaHeaderSize)
		want := ArenaHeader{Total: 4096, Used: 128, FreeHead: 256, FreeTail: 384}

		// Execute
		EncodeArenaHeader(buf, want)
		got := DecodeArenaHeader(buf)

		// Check
		assert.Equal(t, want, got)
	})
}

func TestRecordHeaderRoundTrip(t *testing.T) {
	t.Run("record header fields survive encode/decode", func(t *testing.T) {
		// Prepare
		buf := make([]byte, RecordHeaderSize)

		// Execute
		EncodeRecordHeader(buf, 512, 4, 10, 14)
		next, keySize, valueSize, capacity := DecodeRecordHeader(buf)

		// Check
		assert.Equal(t, uint64(512), next)
		assert.Equal(t, uint32(4), keySize)
		assert.Equal(t, uint32(10), valueSize)
		assert.Equal(t, uint32(14), capacity)
	})
}

func TestSetRecordValueSizeLeavesRestIntact(t *testing.T) {
	t.Run("only value_size changes", func(t *testing.T) {
		// Prepare
		buf := make([]byte, RecordHeaderSize)
		EncodeRecordHeader(buf, 7, 4, 10, 14)

		// Execute
		SetRecordValueSize(buf, 3)
		next, keySize, valueSize, capacity := DecodeRecordHeader(buf)

		// Check
		assert.Equal(t, uint64(7), next)
		assert.Equal(t, uint32(4), keySize)
		assert.Equal(t, uint32(3), valueSize)
		assert.Equal(t, uint32(14), capacity)
	})
}

func TestMinBufferSizeGrowsWithBucketCount(t *testing.T) {
	t.Run("larger bucket counts require a larger buffer", func(t *testing.T) {
		// Prepare / Execute
		small := MinBufferSize(10)
		large := MinBufferSize(100)

		// Check
		assert.Greater(t, large, small)

		wantSmall := uint64(HeaderSize) + uint64(BucketArrayHeaderSize) + 10*uint64(BucketSize) + uint64(ArenaHeaderSize)
		assert.Equal(t, wantSmall, small)
	})
}

func TestArenaDataOffsetNeverZero(t *testing.T) {
	t.Run("arena data never starts at the null sentinel offset", func(t *testing.T) {
		// Prepare / Execute
		off := ArenaDataOffset(10)

		// Check
		assert.NotZero(t, off, "arena data offset must never be zero")
	})
}
