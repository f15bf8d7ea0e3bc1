package hashtable

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	key string
	val int
}

func keyEqual(stored, probe entry) bool {
	return stored.key == probe.key
}

// neverEqual stands in for the identity comparison used during rehash: live
// records are distinct, so it must never fire.
func neverEqual(stored, probe entry) bool {
	return false
}

func TestTable(t *testing.T) {
	t.Run("InsertFindRemove", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		e := entry{key: "alpha", val: 1}
		h := HashString(e.key)

		stored, inserted, err := tbl.Insert(e, h, keyEqual, neverEqual)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, 1, stored.val)
		assert.Equal(t, uint32(1), tbl.Len())

		found, ok := tbl.Find(entry{key: "alpha"}, h, keyEqual)
		require.True(t, ok)
		assert.Equal(t, 1, found.val)

		require.NoError(t, tbl.Remove(entry{key: "alpha"}, h, keyEqual, neverEqual))
		assert.Equal(t, uint32(0), tbl.Len())

		_, ok = tbl.Find(entry{key: "alpha"}, h, keyEqual)
		assert.False(t, ok)
	})

	t.Run("InsertReturnsExistingOnMatch", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		h := HashString("alpha")
		_, inserted, err := tbl.Insert(entry{key: "alpha", val: 1}, h, keyEqual, neverEqual)
		require.NoError(t, err)
		require.True(t, inserted)

		existing, inserted, err := tbl.Insert(entry{key: "alpha", val: 2}, h, keyEqual, neverEqual)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, 1, existing.val, "existing record must win")
		assert.Equal(t, uint32(1), tbl.Len())
	})

	t.Run("StoredPointerIsMutable", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		h := HashString("alpha")
		stored, _, err := tbl.Insert(entry{key: "alpha", val: 1}, h, keyEqual, neverEqual)
		require.NoError(t, err)

		stored.val = 42

		found, ok := tbl.Find(entry{key: "alpha"}, h, keyEqual)
		require.True(t, ok)
		assert.Equal(t, 42, found.val)
	})

	t.Run("RemoveNotFound", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		err = tbl.Remove(entry{key: "missing"}, HashString("missing"), keyEqual, neverEqual)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GrowthKeepsAllRecords", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		const n = 1000
		for i := 0; i < n; i++ {
			k := "key-" + strconv.Itoa(i)
			_, inserted, err := tbl.Insert(entry{key: k, val: i}, HashString(k), keyEqual, neverEqual)
			require.NoError(t, err)
			require.True(t, inserted)
		}
		assert.Equal(t, uint32(n), tbl.Len())
		assert.Greater(t, tbl.Cap(), uint32(8))

		for i := 0; i < n; i++ {
			k := "key-" + strconv.Itoa(i)
			found, ok := tbl.Find(entry{key: k}, HashString(k), keyEqual)
			require.True(t, ok, "lost %q after growth", k)
			assert.Equal(t, i, found.val)
		}
	})

	t.Run("ShrinksAfterMassRemovalButNotBelowMinimum", func(t *testing.T) {
		tbl, err := New[entry](16, true)
		require.NoError(t, err)

		const n = 1000
		for i := 0; i < n; i++ {
			k := "key-" + strconv.Itoa(i)
			_, _, err := tbl.Insert(entry{key: k, val: i}, HashString(k), keyEqual, neverEqual)
			require.NoError(t, err)
		}
		grown := tbl.Cap()

		for i := 0; i < n; i++ {
			k := "key-" + strconv.Itoa(i)
			require.NoError(t, tbl.Remove(entry{key: k}, HashString(k), keyEqual, neverEqual))
		}
		assert.Equal(t, uint32(0), tbl.Len())
		assert.Less(t, tbl.Cap(), grown)
		assert.GreaterOrEqual(t, tbl.Cap(), uint32(16))
	})

	t.Run("TombstoneSlotsAreReused", func(t *testing.T) {
		tbl, err := New[entry](8, false)
		require.NoError(t, err)

		// Fill a few slots, punch holes, refill: the non-resizable table
		// must absorb the churn through tombstone reuse.
		for round := 0; round < 20; round++ {
			k := "round-" + strconv.Itoa(round)
			h := HashString(k)
			_, _, err := tbl.Insert(entry{key: k}, h, keyEqual, neverEqual)
			require.NoError(t, err)
			require.NoError(t, tbl.Remove(entry{key: k}, h, keyEqual, neverEqual))
		}
		assert.Equal(t, uint32(0), tbl.Len())
	})

	t.Run("NonResizableFillsUp", func(t *testing.T) {
		tbl, err := New[entry](8, false)
		require.NoError(t, err)

		var sawFull bool
		for i := 0; i < 16; i++ {
			k := "key-" + strconv.Itoa(i)
			_, _, err := tbl.Insert(entry{key: k, val: i}, HashString(k), keyEqual, neverEqual)
			if err != nil {
				assert.ErrorIs(t, err, ErrTableFull)
				sawFull = true
				break
			}
		}
		assert.True(t, sawFull)
		assert.Equal(t, uint32(8), tbl.Cap())
	})

	t.Run("Range", func(t *testing.T) {
		tbl, err := New[entry](8, true)
		require.NoError(t, err)

		keys := map[string]bool{"a": false, "b": false, "c": false}
		for k := range keys {
			_, _, err := tbl.Insert(entry{key: k}, HashString(k), keyEqual, neverEqual)
			require.NoError(t, err)
		}

		tbl.Range(func(rec *entry) bool {
			keys[rec.key] = true
			return true
		})
		for k, seen := range keys {
			assert.True(t, seen, "Range skipped %q", k)
		}

		// Early stop.
		count := 0
		tbl.Range(func(rec *entry) bool {
			count++
			return false
		})
		assert.Equal(t, 1, count)
	})

	t.Run("CapacityRounding", func(t *testing.T) {
		tbl, err := New[entry](1000, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(1024), tbl.Cap())

		tbl, err = New[entry](0, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(8), tbl.Cap())

		_, err = New[entry](maxCapacity+1, true)
		assert.ErrorIs(t, err, ErrCapacity)
	})
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("abc")), HashString("abc"))
	assert.Equal(t, HashString(""), Hash(nil))

	// Exactly the given bytes are hashed, so prefixes hash independently.
	assert.NotEqual(t, HashString("foo"), HashString("foobar"))

	// Embedded zero bytes are significant.
	assert.NotEqual(t, HashString("a\x00b"), HashString("ab"))
}
