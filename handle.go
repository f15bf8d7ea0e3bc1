package dictgo

import (
	"unsafe"
)

// A handle returned by the dictionary is an ordinary string whose backing
// array is the interned record's buffer. Two handles denote the same record
// exactly when their backing pointers are equal, which is what makes interned
// strings comparable by identity instead of by content.
//
// Empty content is interned over a real one-byte allocation so that even the
// empty string's handle carries a stable, non-nil backing pointer.

// HandleEqual reports whether two handles denote the same interned record,
// comparing backing pointers rather than content. It is only meaningful for
// strings returned by this package; for arbitrary strings equal content does
// not imply equal identity.
func HandleEqual(a, b string) bool {
	return len(a) == len(b) && unsafe.StringData(a) == unsafe.StringData(b)
}

// ownedString copies s into a fresh buffer and returns a string backed by it.
// The buffer is one byte longer than the content, so even zero-length content
// has an addressable backing array. Copying also keeps a probe that is a
// substring of some large string from pinning its parent in memory.
func ownedString(s string) string {
	n := len(s)
	buf := make([]byte, n+1)
	copy(buf, s)
	return unsafe.String(&buf[0], n)
}

// viewString returns a string sharing b's memory, without copying.
func viewString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
