package hashtable

import (
	"github.com/cespare/xxhash/v2"
)

// Hash computes the 32-bit hash used to place a record in a Table.
//
// It hashes exactly the bytes it is given, so content with embedded zero
// bytes hashes differently from any of its prefixes. Built on xxHash for
// speed; callers must not rely on the exact values across releases.
func Hash(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}

// HashString is Hash for string content, avoiding a []byte conversion.
func HashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}
