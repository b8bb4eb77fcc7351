package arenahash

import (
	"fmt"
	"testing"

	"github.com/gostonefire/arenahash/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, size int) *Table {
	t.Helper()
	buf := make([]byte, size)
	tbl, err := Create(buf, nil)
	require.NoError(t, err, "create table")
	return tbl
}

func TestCreate(t *testing.T) {
	t.Run("derives a default hasher and bucket count when config is nil", func(t *testing.T) {
		// Prepare
		buf := make([]byte, 4096)

		// Execute
		tbl, err := Create(buf, nil)

		// Check
		require.NoError(t, err, "create with nil config")
		assert.True(t, tbl.Stat(false).BucketCount >= minDefaultBuckets, "bucket count floored at minimum")
	})

	t.Run("rejects a supplied config with a nil hash function", func(t *testing.T) {
		// Prepare
		buf := make([]byte, 4096)

		// Execute
		_, err := Create(buf, &Config{Buckets: 16})

		// Check
		assert.ErrorAs(t, err, &InvalidError{}, "invalid error for nil hash")
	})

	t.Run("rejects a supplied config with zero buckets", func(t *testing.T) {
		// Prepare
		buf := make([]byte, 4096)

		// Execute
		_, err := Create(buf, &Config{Hash: hash.FNV1a()})

		// Check
		assert.ErrorAs(t, err, &InvalidError{}, "invalid error for zero buckets")
	})

	t.Run("rejects a nil buffer", func(t *testing.T) {
		_, err := Create(nil, nil)
		assert.ErrorAs(t, err, &InvalidError{}, "invalid error for nil buffer")
	})

	t.Run("accepts a buffer exactly at the minimum required size, but the first insert has no space", func(t *testing.T) {
		// Prepare
		bucketCount := uint32(10)
		size := minBufferSizeForTest(bucketCount)
		buf := make([]byte, size)

		// Execute
		tbl, err := Create(buf, &Config{Hash: hash.FNV1a(), Buckets: bucketCount})
		require.NoError(t, err, "create at exact minimum size")

		err = tbl.Insert([]byte("k"), []byte("v"))

		// Check
		assert.ErrorAs(t, err, &NoSpaceError{}, "insert into a zero-capacity arena has no space")
	})

	t.Run("rejects a buffer smaller than the minimum required size", func(t *testing.T) {
		// Prepare
		bucketCount := uint32(10)
		size := minBufferSizeForTest(bucketCount) - 1

		// Execute
		_, err := Create(make([]byte, size), &Config{Hash: hash.FNV1a(), Buckets: bucketCount})

		// Check
		assert.ErrorAs(t, err, &NoSpaceError{}, "buffer too small to create")
	})
}

func TestInsertAndRetrieve(t *testing.T) {
	t.Run("inserts then retrieves a new key", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)

		// Execute
		err := tbl.Insert([]byte("hello"), []byte("world"))
		require.NoError(t, err, "insert")

		value, err := tbl.Retrieve([]byte("hello"))

		// Check
		require.NoError(t, err, "retrieve")
		assert.Equal(t, "world", string(value))
	})

	t.Run("retrieving a missing key returns not found", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)

		// Execute
		_, err := tbl.Retrieve([]byte("missing"))

		// Check
		assert.ErrorAs(t, err, &NotFoundError{}, "not found error")
	})

	t.Run("overwrites a shrinking value in place without moving the record", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)
		require.NoError(t, tbl.Insert([]byte("k"), []byte("longvalue")))
		before := tbl.Stat(false).BytesUsed

		// Execute
		err := tbl.Insert([]byte("k"), []byte("sv"))

		// Check
		require.NoError(t, err, "overwrite with a shorter value")
		value, err := tbl.Retrieve([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, "sv", string(value))
		assert.Equal(t, before, tbl.Stat(false).BytesUsed, "in-place shrink must not allocate")
	})

	t.Run("growing a value reallocates the record but preserves the mapping", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)
		require.NoError(t, tbl.Insert([]byte("k"), []byte("sv")))

		// Execute
		err := tbl.Insert([]byte("k"), []byte("a much longer value than before"))

		// Check
		require.NoError(t, err, "grow value")
		value, err := tbl.Retrieve([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, "a much longer value than before", string(value))
		assert.Equal(t, uint32(1), tbl.Stat(false).EntryCount, "still exactly one entry for the key")
	})

	t.Run("an empty value is accepted and round-trips as a zero-length slice", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)

		// Execute
		err := tbl.Insert([]byte("k"), nil)

		// Check
		require.NoError(t, err, "insert with nil value")
		value, err := tbl.Retrieve([]byte("k"))
		require.NoError(t, err)
		assert.Len(t, value, 0)
	})

	t.Run("rejects a zero-length key", func(t *testing.T) {
		tbl := newTestTable(t, 4096)
		err := tbl.Insert(nil, []byte("v"))
		assert.ErrorAs(t, err, &InvalidError{})
	})

	t.Run("keys of different lengths sharing a hash bucket never confuse the chain walk", func(t *testing.T) {
		// Prepare: a table with exactly one bucket forces every key into the
		// same chain, regardless of hash value.
		buf := make([]byte, 4096)
		tbl, err := Create(buf, &Config{Hash: hash.FNV1a(), Buckets: 1})
		require.NoError(t, err)

		require.NoError(t, tbl.Insert([]byte("a"), []byte("1")))
		require.NoError(t, tbl.Insert([]byte("bb"), []byte("2")))
		require.NoError(t, tbl.Insert([]byte("ccc"), []byte("3")))

		// Execute / Check
		v, err := tbl.Retrieve([]byte("bb"))
		require.NoError(t, err)
		assert.Equal(t, "2", string(v))

		v, err = tbl.Retrieve([]byte("ccc"))
		require.NoError(t, err)
		assert.Equal(t, "3", string(v))
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes an existing key and frees its record for reuse", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)
		require.NoError(t, tbl.Insert([]byte("k"), []byte("v")))
		usedBefore := tbl.Stat(false).BytesUsed

		// Execute
		err := tbl.Remove([]byte("k"))

		// Check
		require.NoError(t, err, "remove")
		_, err = tbl.Retrieve([]byte("k"))
		assert.ErrorAs(t, err, &NotFoundError{}, "removed key is gone")

		require.NoError(t, tbl.Insert([]byte("x"), []byte("y")))
		assert.Equal(t, usedBefore, tbl.Stat(false).BytesUsed, "reuses freed bytes rather than bumping further")
	})

	t.Run("removing a missing key returns not found and leaves the table unchanged", func(t *testing.T) {
		tbl := newTestTable(t, 4096)
		require.NoError(t, tbl.Insert([]byte("k"), []byte("v")))
		before := tbl.Stat(false)
		err := tbl.Remove([]byte("missing"))
		assert.ErrorAs(t, err, &NotFoundError{})
		assert.Equal(t, before, tbl.Stat(false), "table state unchanged")
	})

	t.Run("remove then reinsert is neutral on entry count", func(t *testing.T) {
		// Prepare
		tbl := newTestTable(t, 4096)
		require.NoError(t, tbl.Insert([]byte("k"), []byte("v")))
		before := tbl.Stat(false).EntryCount

		// Execute
		require.NoError(t, tbl.Remove([]byte("k")))
		require.NoError(t, tbl.Insert([]byte("k"), []byte("v2")))

		// Check
		assert.Equal(t, before, tbl.Stat(false).EntryCount)
	})
}

func TestHasKey(t *testing.T) {
	tbl := newTestTable(t, 4096)
	require.NoError(t, tbl.Insert([]byte("k"), []byte("v")))

	assert.True(t, tbl.HasKey([]byte("k")))
	assert.False(t, tbl.HasKey([]byte("missing")))
}

func TestIterationVisitsEveryEntryExactlyOnce(t *testing.T) {
	// Prepare
	tbl := newTestTable(t, 16384)
	want := map[string]string{}
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("key-%d", i)
		v := fmt.Sprintf("value-%d", i)
		require.NoError(t, tbl.Insert([]byte(k), []byte(v)))
		want[k] = v
	}

	// Execute
	got := map[string]string{}
	for {
		k, v, err := tbl.Next()
		if err != nil {
			break
		}
		got[string(k)] = string(v)
	}

	// Check
	assert.Equal(t, want, got, "iteration visits every live entry exactly once")

	_, _, err := tbl.Next()
	assert.ErrorAs(t, err, &NotFoundError{}, "cursor stays exhausted until reset")

	tbl.Reset()
	k, _, err := tbl.Next()
	require.NoError(t, err, "reset restarts the pass")
	assert.Contains(t, want, string(k))
}

func TestBytesRemainingShrinksAsRecordsAreAdded(t *testing.T) {
	tbl := newTestTable(t, 4096)
	before := tbl.BytesRemaining()

	require.NoError(t, tbl.Insert([]byte("k"), []byte("value")))

	assert.Less(t, tbl.BytesRemaining(), before)
}

// minBufferSizeForTest mirrors layout.MinBufferSize without importing the
// internal package from an external-looking test file; table_test.go is
// still part of package arenahash so it could reach internal/layout
// directly, but recomputing it here keeps this test decoupled from the
// internal package's exact constant names.
func minBufferSizeForTest(bucketCount uint32) int {
	const headerSize = 32
	const bucketArrayHeaderSize = 8
	const bucketSize = 16
	const arenaHeaderSize = 32
	return headerSize + bucketArrayHeaderSize + int(bucketCount)*bucketSize + arenaHeaderSize
}
