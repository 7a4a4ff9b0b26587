// Package xxhash provides XXH64 hashing capabilities
// for both strings and byte slices without conversion allocations.
//
// Forked from github.com/pierrec/xxHash.
package xxhash

const (
	prime64_1 = 11400714785074694791
	prime64_2 = 14029467366897019727
	prime64_3 = 1609587929392839161
	prime64_4 = 9650029242287828579
	prime64_5 = 2870177450012600261
)

// Digest is a streaming XXH64 hash state.
// The zero value is not valid, use New.
type Digest struct {
	seed, v1, v2, v3, v4, totalLen uint64
	buf                            [32]byte
	bufused                        int
}

// New returns a new digest initialized with seed.
func New(seed uint64) Digest {
	d := Digest{seed: seed}
	d.Reset()
	return d
}

// Reset resets the digest to its initial state keeping the seed.
func (d *Digest) Reset() {
	d.v1 = d.seed + prime64_1 + prime64_2
	d.v2 = d.seed + prime64_2
	d.v3 = d.seed
	d.v4 = d.seed - prime64_1
	d.totalLen, d.bufused = 0, 0
}

// Sum64 hashes input in one shot.
func Sum64[B []byte | string](input B, seed uint64) uint64 {
	d := New(seed)
	Write(&d, input)
	return d.Sum64()
}

// Write adds input bytes to the digest.
func Write[B []byte | string](d *Digest, input B) {
	n := len(input)
	m := d.bufused

	d.totalLen += uint64(n)

	r := len(d.buf) - m
	if n < r {
		copy(d.buf[m:], input)
		d.bufused += n
		return
	}

	p := 0
	if m > 0 {
		// Fill up the buffer left over from the previous write
		copy(d.buf[m:], input[:r])
		d.v1 = rol31(d.v1+u64(d.buf[:])*prime64_2) * prime64_1
		d.v2 = rol31(d.v2+u64(d.buf[8:])*prime64_2) * prime64_1
		d.v3 = rol31(d.v3+u64(d.buf[16:])*prime64_2) * prime64_1
		d.v4 = rol31(d.v4+u64(d.buf[24:])*prime64_2) * prime64_1
		p = r
		d.bufused = 0
	}

	// Work on locals so the compiler keeps them in registers.
	v1, v2, v3, v4 := d.v1, d.v2, d.v3, d.v4
	for n := n - 32; p <= n; p += 32 {
		sub := input[p:][:32] // BCE hint
		v1 = rol31(v1+u64(sub[:])*prime64_2) * prime64_1
		v2 = rol31(v2+u64(sub[8:])*prime64_2) * prime64_1
		v3 = rol31(v3+u64(sub[16:])*prime64_2) * prime64_1
		v4 = rol31(v4+u64(sub[24:])*prime64_2) * prime64_1
	}
	d.v1, d.v2, d.v3, d.v4 = v1, v2, v3, v4

	copy(d.buf[d.bufused:], input[p:])
	d.bufused += n - p
}

// Sum64 returns the 64-bit hash of everything written so far
// without modifying the digest.
func (d *Digest) Sum64() uint64 {
	var h64 uint64
	if d.totalLen >= 32 {
		h64 = rol1(d.v1) + rol7(d.v2) + rol12(d.v3) + rol18(d.v4)
		h64 = (h64^(rol31(d.v1*prime64_2)*prime64_1))*prime64_1 + prime64_4
		h64 = (h64^(rol31(d.v2*prime64_2)*prime64_1))*prime64_1 + prime64_4
		h64 = (h64^(rol31(d.v3*prime64_2)*prime64_1))*prime64_1 + prime64_4
		h64 = (h64^(rol31(d.v4*prime64_2)*prime64_1))*prime64_1 + prime64_4
		h64 += d.totalLen
	} else {
		h64 = d.seed + prime64_5 + d.totalLen
	}

	p, n := 0, d.bufused
	for ; p+8 <= n; p += 8 {
		h64 ^= rol31(u64(d.buf[p:p+8])*prime64_2) * prime64_1
		h64 = rol27(h64)*prime64_1 + prime64_4
	}
	if p+4 <= n {
		h64 ^= uint64(u32(d.buf[p:p+4])) * prime64_1
		h64 = rol23(h64)*prime64_2 + prime64_3
		p += 4
	}
	for ; p < n; p++ {
		h64 ^= uint64(d.buf[p]) * prime64_5
		h64 = rol11(h64) * prime64_1
	}

	h64 ^= h64 >> 33
	h64 *= prime64_2
	h64 ^= h64 >> 29
	h64 *= prime64_3
	h64 ^= h64 >> 32

	return h64
}

func u64[B []byte | string](buf B) uint64 {
	// The compiler recognizes this pattern
	// and emits a single load on little endian platforms.
	return uint64(buf[0]) |
		uint64(buf[1])<<8 |
		uint64(buf[2])<<16 |
		uint64(buf[3])<<24 |
		uint64(buf[4])<<32 |
		uint64(buf[5])<<40 |
		uint64(buf[6])<<48 |
		uint64(buf[7])<<56
}

func u32(buf []byte) uint32 {
	return uint32(buf[0]) |
		uint32(buf[1])<<8 |
		uint32(buf[2])<<16 |
		uint32(buf[3])<<24
}

func rol1(u uint64) uint64  { return u<<1 | u>>63 }
func rol7(u uint64) uint64  { return u<<7 | u>>57 }
func rol11(u uint64) uint64 { return u<<11 | u>>53 }
func rol12(u uint64) uint64 { return u<<12 | u>>52 }
func rol18(u uint64) uint64 { return u<<18 | u>>46 }
func rol23(u uint64) uint64 { return u<<23 | u>>41 }
func rol27(u uint64) uint64 { return u<<27 | u>>37 }
func rol31(u uint64) uint64 { return u<<31 | u>>33 }
