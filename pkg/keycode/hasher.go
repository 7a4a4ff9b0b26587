package keycode

import (
	"fmt"

	"github.com/fxamacker/circlehash"
	"github.com/graph-guard/odict/pkg/xxhash"
	"github.com/zeebo/xxh3"
)

// Hasher hashes canonical key encodings.
// Hashes must be stable for the life-time of the process.
type Hasher interface{ Hash([]byte) uint64 }

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc func([]byte) uint64

func (fn HasherFunc) Hash(b []byte) uint64 { return fn(b) }

// XXH3 hashes using XXH3-64 from github.com/zeebo/xxh3.
type XXH3 struct{ Seed uint64 }

func (h XXH3) Hash(b []byte) uint64 {
	if h.Seed == 0 {
		return xxh3.Hash(b)
	}
	return xxh3.HashSeed(b, h.Seed)
}

// XXH64 hashes using XXH64.
type XXH64 struct{ Seed uint64 }

func (h XXH64) Hash(b []byte) uint64 { return xxhash.Sum64(b, h.Seed) }

// Circle hashes using CircleHash64 from github.com/fxamacker/circlehash.
type Circle struct{ Seed uint64 }

func (h Circle) Hash(b []byte) uint64 { return circlehash.Hash64(b, h.Seed) }

// DefaultHasher is used whenever no hasher is provided.
var DefaultHasher Hasher = XXH3{}

const (
	HasherNameXXH3   = "xxh3"
	HasherNameXXH64  = "xxh64"
	HasherNameCircle = "circle"
)

// HasherByName returns the hasher registered under name.
// An empty name selects the default hasher.
func HasherByName(name string, seed uint64) (Hasher, error) {
	switch name {
	case "", HasherNameXXH3:
		return XXH3{Seed: seed}, nil
	case HasherNameXXH64:
		return XXH64{Seed: seed}, nil
	case HasherNameCircle:
		return Circle{Seed: seed}, nil
	}
	return nil, fmt.Errorf("unknown hasher %q", name)
}
