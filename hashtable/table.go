// Package hashtable provides a generic open-addressed, resizable hash table.
//
// The table stores records of an arbitrary type T and delegates all equality
// decisions to the caller: every Find, Insert and Remove call takes the
// equality function to use for that call. This keeps the table free of any
// mutable comparator state - a caller that needs different equality semantics
// for different operations (for example content equality on lookup but
// pointer identity while records are redistributed during a resize) simply
// passes a different function, and there is no shared slot to swap and
// restore.
//
// The table itself is not safe for concurrent use; callers are expected to
// serialize access with their own lock.
package hashtable

import (
	"errors"
	"fmt"
	"math/bits"
)

// EqualFn decides whether a stored record matches a probe record. The stored
// record is always the first argument.
type EqualFn[T any] func(stored, probe T) bool

var (
	// ErrNotFound is returned by Remove when no stored record matches.
	ErrNotFound = errors.New("hashtable: record not found")

	// ErrTableFull is returned when a non-resizable table has no free slot
	// left for an insertion.
	ErrTableFull = errors.New("hashtable: table full")

	// ErrCapacity is returned by New for capacities that cannot be allocated.
	ErrCapacity = errors.New("hashtable: invalid capacity")
)

const (
	// minCapacity is the smallest slot count a table ever uses.
	minCapacity uint32 = 8

	// maxCapacity bounds the slot count so the power-of-two doubling below
	// cannot overflow uint32 arithmetic.
	maxCapacity uint32 = 1 << 30
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotDeleted
)

type slot[T any] struct {
	state slotState
	hash  uint32
	rec   T
}

// Table is an open-addressed hash table with linear probing. Capacity is
// always a power of two. Deleted slots become tombstones that are reclaimed
// by the next rehash.
type Table[T any] struct {
	slots     []slot[T]
	live      uint32
	deleted   uint32
	minCap    uint32
	resizable bool
}

// New creates a table with at least minCap slots. The capacity is rounded up
// to a power of two and never shrinks below it. When resizable is false the
// table keeps its initial capacity and Insert fails with ErrTableFull once no
// slot is free.
func New[T any](minCap uint32, resizable bool) (*Table[T], error) {
	if minCap > maxCapacity {
		return nil, fmt.Errorf("%w: %d exceeds maximum %d", ErrCapacity, minCap, maxCapacity)
	}
	c := roundUpPow2(minCap)
	if c < minCapacity {
		c = minCapacity
	}
	return &Table[T]{
		slots:     make([]slot[T], c),
		minCap:    c,
		resizable: resizable,
	}, nil
}

// Len returns the number of live records.
func (t *Table[T]) Len() uint32 {
	return t.live
}

// Cap returns the current slot count.
func (t *Table[T]) Cap() uint32 {
	return uint32(len(t.slots))
}

// Find returns a pointer to the stored record matching probe under eq, or
// false if none matches. The pointer is valid until the next Insert or Remove
// on the table.
func (t *Table[T]) Find(probe T, hash uint32, eq EqualFn[T]) (*T, bool) {
	mask := uint32(len(t.slots)) - 1
	idx := hash & mask
	for i := uint32(0); i < uint32(len(t.slots)); i++ {
		s := &t.slots[(idx+i)&mask]
		switch s.state {
		case slotEmpty:
			return nil, false
		case slotLive:
			if s.hash == hash && eq(s.rec, probe) {
				return &s.rec, true
			}
		}
	}
	return nil, false
}

// Insert stores rec unless a record matching it under eq already exists. It
// returns a pointer to the stored record and true when rec was inserted, or a
// pointer to the existing record and false on a match. Only one probe
// sequence is walked: the target slot is claimed during the same scan that
// rules out an existing match.
//
// resizeEq is the equality used if the insertion triggers a growth rehash;
// since all live records are known to be distinct, callers typically pass a
// cheaper identity comparison here.
func (t *Table[T]) Insert(rec T, hash uint32, eq, resizeEq EqualFn[T]) (*T, bool, error) {
	if t.resizable && t.overloaded(t.live+t.deleted+1) {
		if err := t.rehash(t.grownCapacity(), resizeEq); err != nil {
			return nil, false, err
		}
	}

	mask := uint32(len(t.slots)) - 1
	idx := hash & mask
	target := -1
	for i := uint32(0); i < uint32(len(t.slots)); i++ {
		j := (idx + i) & mask
		s := &t.slots[j]
		switch s.state {
		case slotEmpty:
			if target < 0 {
				target = int(j)
			}
			// An empty slot ends the probe sequence: no match exists.
			ts := &t.slots[target]
			if ts.state == slotDeleted {
				t.deleted--
			}
			ts.state, ts.hash, ts.rec = slotLive, hash, rec
			t.live++
			return &ts.rec, true, nil
		case slotDeleted:
			if target < 0 {
				target = int(j)
			}
		case slotLive:
			if s.hash == hash && eq(s.rec, rec) {
				return &s.rec, false, nil
			}
		}
	}
	if target >= 0 {
		// Every slot is live or deleted but a tombstone can be reused.
		ts := &t.slots[target]
		t.deleted--
		ts.state, ts.hash, ts.rec = slotLive, hash, rec
		t.live++
		return &ts.rec, true, nil
	}
	return nil, false, ErrTableFull
}

// Remove deletes the stored record matching probe under eq, returning
// ErrNotFound if none matches. A removal may trigger a compacting or
// shrinking rehash, during which remaining records are redistributed using
// resizeEq.
func (t *Table[T]) Remove(probe T, hash uint32, eq, resizeEq EqualFn[T]) error {
	mask := uint32(len(t.slots)) - 1
	idx := hash & mask
	for i := uint32(0); i < uint32(len(t.slots)); i++ {
		s := &t.slots[(idx+i)&mask]
		switch s.state {
		case slotEmpty:
			return ErrNotFound
		case slotLive:
			if s.hash == hash && eq(s.rec, probe) {
				var zero T
				s.state, s.hash, s.rec = slotDeleted, 0, zero
				t.live--
				t.deleted++
				return t.maybeCompact(resizeEq)
			}
		}
	}
	return ErrNotFound
}

// Range calls fn for every live record until fn returns false. The record
// pointers are valid for the duration of the call only.
func (t *Table[T]) Range(fn func(rec *T) bool) {
	for i := range t.slots {
		if t.slots[i].state == slotLive {
			if !fn(&t.slots[i].rec) {
				return
			}
		}
	}
}

// overloaded reports whether occupied slots would exceed the 75% load bound.
func (t *Table[T]) overloaded(occupied uint32) bool {
	return occupied*4 > uint32(len(t.slots))*3
}

// grownCapacity doubles until the live records fit comfortably. Tombstones
// are dropped by the rehash, so they do not count here; when load was
// dominated by tombstones this returns the current capacity and the rehash
// compacts in place.
func (t *Table[T]) grownCapacity() uint32 {
	c := uint32(len(t.slots))
	for c < maxCapacity && (t.live+1)*4 > c*3 {
		c *= 2
	}
	return c
}

// maybeCompact rehashes after a removal when the table is mostly tombstones
// or sparse enough to shrink.
func (t *Table[T]) maybeCompact(resizeEq EqualFn[T]) error {
	if !t.resizable {
		return nil
	}
	c := uint32(len(t.slots))
	newCap := c
	for newCap > t.minCap && t.live*8 < newCap {
		newCap /= 2
	}
	if newCap != c {
		return t.rehash(newCap, resizeEq)
	}
	if t.deleted*2 > c {
		return t.rehash(c, resizeEq)
	}
	return nil
}

// rehash redistributes all live records into a fresh slot array of the given
// capacity. eq guards the invariant that no two live records collide as
// equal; a hit means the table was corrupted by its caller.
func (t *Table[T]) rehash(capacity uint32, eq EqualFn[T]) error {
	if capacity > maxCapacity {
		return fmt.Errorf("%w: cannot grow beyond %d slots", ErrCapacity, maxCapacity)
	}
	next := make([]slot[T], capacity)
	mask := capacity - 1
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotLive {
			continue
		}
		placed := false
		idx := s.hash & mask
		for j := uint32(0); j < capacity; j++ {
			n := &next[(idx+j)&mask]
			if n.state == slotEmpty {
				n.state, n.hash, n.rec = slotLive, s.hash, s.rec
				placed = true
				break
			}
			if n.hash == s.hash && eq(n.rec, s.rec) {
				return fmt.Errorf("hashtable: duplicate record during rehash (hash %#x)", s.hash)
			}
		}
		if !placed {
			return fmt.Errorf("hashtable: no free slot during rehash to %d", capacity)
		}
	}
	t.slots = next
	t.deleted = 0
	return nil
}

func roundUpPow2(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << (32 - bits.LeadingZeros32(v-1))
}
