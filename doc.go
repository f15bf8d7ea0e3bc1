// Package dictgo provides a refcounted string-interning dictionary for Go.
//
// Dictgo stores each distinct string content exactly once and hands out
// shared handles to it. Repeated identical identifiers across a large
// in-memory model collapse to one allocation, and handles can be compared by
// identity instead of content. Storage is reclaimed strictly by refcount:
// every insertion or duplication takes a reference, every removal releases
// one, and the record's buffer is dropped exactly when no holder remains.
//
// # Quick Start
//
//	ctx, _ := dictgo.NewContext()
//	defer ctx.Close()
//
//	h1, _ := dictgo.Insert(ctx, "interface-name", 0)
//	h2, _ := dictgo.Insert(ctx, "interface-name", 0)
//	// h1 and h2 share one backing buffer:
//	same := dictgo.HandleEqual(h1, h2) // true
//
//	dictgo.Remove(ctx, h1)
//	dictgo.Remove(ctx, h2) // refcount hits zero, storage released
//
// # Insert Modes
//
//	// 1. COPY - the dictionary stores its own copy of the content.
//	h, _ := d.Insert("leaf-list", 0)
//	h, _ := d.InsertBytes(raw, n) // first n bytes; embedded NULs allowed
//
//	// 2. ZERO-COPY - ownership of buf transfers to the dictionary,
//	//    unconditionally. Never touch buf after this call: on a duplicate
//	//    match the existing record is shared and buf is discarded.
//	h, _ := d.InsertZeroCopy(buf)
//
//	// 3. DUP - cheap extra reference to a handle you already hold.
//	//    Matches by backing pointer, never by content.
//	h2, _ := d.Dup(h)
//
// # Handles
//
// A handle is an ordinary string backed by the interned record's buffer. It
// is borrowed, not owned: it stays valid exactly while the record's refcount
// is at least 1, and using it after the last Remove is a contract violation
// the library does not detect at runtime.
//
// # Concurrency
//
// All operations on one Dict serialize on a single mutex and are safe to
// call from any number of goroutines. Contexts may share one Dict (shared
// "immutable store" mode); the lock totally orders all table mutation.
//
// # Key Features
//
//   - One authoritative map from content to record (no second table for
//     identity lookups; equality semantics are chosen per call)
//   - Copy and zero-copy insertion, duplication, refcounted removal
//   - Leak reporting at Close for unbalanced records
//   - Structured logging (slog) and pluggable metrics collection
package dictgo
