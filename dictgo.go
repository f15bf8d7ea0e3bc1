package dictgo

import (
	"sync"
	"time"

	"github.com/hupe1980/dictgo/hashtable"
)

// record is a single interned string: the owned value buffer and the number
// of outstanding holders. A record is present in the table if and only if
// its refcount is at least 1.
type record struct {
	value    string
	refcount uint32
}

// Dict is a refcounted string-interning store. Each distinct content is kept
// exactly once; insertions of equal content return the identical handle and
// bump the record's refcount, and the record is dropped when removals bring
// the refcount back to zero.
//
// All operations serialize on a single internal mutex and are safe for
// concurrent use. A Dict must not be reentered from code already holding its
// lock (there is no recursive locking).
type Dict struct {
	mu      sync.Mutex
	table   *hashtable.Table[record]
	logger  *Logger
	metrics MetricsCollector
	closed  bool
}

// New creates an empty dictionary.
func New(opts ...Option) (*Dict, error) {
	o := applyOptions(opts)
	tbl, err := hashtable.New[record](o.minCapacity, true)
	if err != nil {
		return nil, internalErr("new", err)
	}
	return &Dict{
		table:   tbl,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// contentEqual builds the content-equality comparison for one lookup,
// bounded by an explicit probe length: a stored value matches only when its
// own length equals length and its bytes equal the probe's first length
// bytes. A stored value that merely extends the probe is not a match.
func contentEqual(length int) hashtable.EqualFn[record] {
	return func(stored, probe record) bool {
		if len(stored.value) != length {
			return false
		}
		return stored.value == probe.value[:length]
	}
}

// identityEqual matches only when two records share one backing buffer. It
// is valid solely among records already known to the table - duplication of
// an existing handle, and redistribution of live records during a table
// resize, where every value is already known to be distinct.
func identityEqual(stored, probe record) bool {
	return HandleEqual(stored.value, probe.value)
}

// Insert interns the first length bytes of value and returns the shared
// handle. length 0 means the whole string. Equal content always yields a
// handle with the identical backing pointer while the record lives; the
// record's refcount counts one per successful insertion.
func (d *Dict) Insert(value string, length int) (string, error) {
	start := time.Now()
	view, err := boundedView(value, length)
	if err != nil {
		d.metrics.RecordInsert(false, time.Since(start), err)
		return "", err
	}
	handle, hit, err := d.insert(view, false)
	d.metrics.RecordInsert(hit, time.Since(start), err)
	return handle, err
}

// InsertBytes is Insert for byte-slice content. A nil slice is the defined
// "no string" input: it succeeds, returns the zero handle and does not touch
// the table. Content may contain zero bytes; exactly length bytes (or the
// whole slice when length is 0) are interned.
func (d *Dict) InsertBytes(value []byte, length int) (string, error) {
	if value == nil {
		return "", nil
	}
	return d.Insert(viewString(value), length)
}

// InsertZeroCopy interns the content of buf without copying, transferring
// ownership of buf to the dictionary. The transfer is unconditional: whether
// or not a record with equal content already exists, the caller must not
// read, write or reuse buf after the call. On a match the existing record's
// refcount is incremented and buf is discarded; otherwise buf's memory
// becomes the record's value directly.
//
// A nil buf is the defined "no string" input, succeeding with a zero handle.
func (d *Dict) InsertZeroCopy(buf []byte) (string, error) {
	start := time.Now()
	if buf == nil {
		d.metrics.RecordInsert(false, time.Since(start), nil)
		return "", nil
	}
	handle, hit, err := d.insert(viewString(buf), true)
	d.metrics.RecordInsert(hit, time.Since(start), err)
	return handle, err
}

// insert does the table work shared by the copy and zero-copy variants.
// view covers exactly the bytes to intern; for zero-copy it aliases the
// caller's transferred buffer.
func (d *Dict) insert(view string, zerocopy bool) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", false, ErrClosed
	}

	d.logger.Debug("inserting", "value", truncateValue(view))

	hash := hashtable.HashString(view)
	rec := record{value: view, refcount: 1}
	match, inserted, err := d.table.Insert(rec, hash, contentEqual(len(view)), identityEqual)
	if err != nil {
		return "", false, internalErr("insert", err)
	}
	if match == nil {
		return "", false, internalErr("insert", errNoRecord)
	}

	if !inserted {
		// Existing record: share it. For zero-copy the caller's buffer is
		// dropped here - ownership was transferred regardless of outcome.
		match.refcount++
		return match.value, true, nil
	}

	if !zerocopy || len(view) == 0 {
		// The slot is already reserved; materialize the owned buffer now.
		// Zero-copy takes this path only for empty content, which has no
		// addressable byte of its own to adopt.
		match.value = ownedString(view)
	}
	return match.value, false, nil
}

// Dup increments the refcount of an existing handle and returns the
// identical handle. The handle must have been returned by this dictionary;
// the lookup compares backing pointers, never content, so an equal string
// from anywhere else yields ErrNotFound.
func (d *Dict) Dup(handle string) (string, error) {
	start := time.Now()
	h, err := d.dup(handle)
	d.metrics.RecordDup(time.Since(start), err)
	return h, err
}

func (d *Dict) dup(handle string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", ErrClosed
	}

	d.logger.Debug("duplicating", "value", truncateValue(handle))

	hash := hashtable.HashString(handle)
	match, ok := d.table.Find(record{value: handle}, hash, identityEqual)
	if !ok {
		return "", ErrNotFound
	}
	match.refcount++
	return match.value, nil
}

// Remove decrements the refcount of the record holding handle's content.
// When the refcount reaches zero the record is removed from the table and
// its buffer released. Removing content that was never interned returns
// ErrNotFound and changes nothing.
func (d *Dict) Remove(handle string) error {
	start := time.Now()
	freed, err := d.remove(handle)
	d.metrics.RecordRemove(freed, time.Since(start), err)
	return err
}

func (d *Dict) remove(handle string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false, ErrClosed
	}

	d.logger.Debug("removing", "value", truncateValue(handle))

	hash := hashtable.HashString(handle)
	eq := contentEqual(len(handle))
	probe := record{value: handle}

	match, ok := d.table.Find(probe, hash, eq)
	if !ok {
		d.logger.Error("value not found in the dictionary", "value", truncateValue(handle))
		return false, ErrNotFound
	}

	match.refcount--
	if match.refcount > 0 {
		return false, nil
	}

	// Zeroing the slot inside Remove drops the only remaining reference to
	// the record's buffer. Redistribution of other live records during a
	// shrink or compaction compares identities, not content.
	if err := d.table.Remove(probe, hash, eq, identityEqual); err != nil {
		return false, internalErr("remove", err)
	}
	return true, nil
}

// Close tears the dictionary down. Records still present are
// caller-discipline violations (insertions not balanced with removals); each
// one is reported as a warning with its content and refcount, then dropped
// so the storage is reclaimed anyway. Close on an empty or already-closed
// dictionary is a no-op.
func (d *Dict) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	d.table.Range(func(rec *record) bool {
		d.logger.LogLeak(rec.value, rec.refcount)
		d.metrics.RecordLeak(rec.refcount)
		return true
	})

	d.table = nil
	d.closed = true
	return nil
}

// Stats is a point-in-time snapshot of dictionary state.
type Stats struct {
	// UniqueStrings is the number of live interned records.
	UniqueStrings uint32
	// TableCapacity is the backing table's current slot count.
	TableCapacity uint32
	// TotalRefs sums the refcounts of all live records.
	TotalRefs uint64
}

// Stats returns a snapshot of the dictionary. A closed dictionary reports
// zeroes.
func (d *Dict) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return Stats{}
	}
	st := Stats{
		UniqueStrings: d.table.Len(),
		TableCapacity: d.table.Cap(),
	}
	d.table.Range(func(rec *record) bool {
		st.TotalRefs += uint64(rec.refcount)
		return true
	})
	return st
}

// boundedView narrows value to its first length bytes, with 0 meaning the
// natural (full) length.
func boundedView(value string, length int) (string, error) {
	if length < 0 || length > len(value) {
		return "", ErrInvalidArgument
	}
	if length == 0 {
		return value, nil
	}
	return value[:length], nil
}
