package hash

import (
	"hash"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// New returns a streaming xxHash64 digest.
func New() hash.Hash64 {
	return xxhash.New()
}
