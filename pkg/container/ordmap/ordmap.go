// Package ordmap provides a mutable insertion-ordered map
// for keys of any type that can be canonically encoded.
//
// Entries live in an ordered store of parallel slices which is the
// source of truth for iteration order. An open-addressing slot table
// (see package slottab) maps hashes of canonical key encodings to
// store positions. Key identity is decided by comparing canonical
// encodings, so hash collisions never alias distinct keys.
//
// Deleting a key tombstones its slot and marks its store position dead
// instead of shifting all subsequent entries. Dead positions are
// dropped when the store is compacted, either explicitly or
// automatically once the garbage outweighs the live entries.
package ordmap

import (
	"fmt"
	"iter"

	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/graph-guard/odict/pkg/math"
	"github.com/graph-guard/odict/pkg/slottab"
)

// DefaultCompactRatio is used when Options.CompactRatio is zero.
const DefaultCompactRatio = 1.0

// compactMinGarbage is the minimum number of dead positions
// required to trigger automatic compaction.
const compactMinGarbage = 8

// Options configures a Map.
type Options struct {
	// Capacity is the number of entries to preallocate for.
	Capacity int

	// Hasher hashes canonical key encodings.
	// keycode.DefaultHasher is used if nil.
	Hasher keycode.Hasher

	// CompactRatio defines when the store is compacted automatically:
	// once the number of dead positions exceeds the number of
	// live entries multiplied by CompactRatio.
	// Zero selects DefaultCompactRatio, a negative ratio disables
	// automatic compaction.
	CompactRatio float64
}

// Map is an insertion-ordered map.
// Map isn't safe for concurrent use, except for concurrent reads.
type Map[K, V any] struct {
	enc          keycode.Encoder[K]
	hasher       keycode.Hasher
	compactRatio float64
	s            store[K, V]
	t            *slottab.Table
}

// New creates a new map instance.
func New[K, V any](enc keycode.Encoder[K], o Options) *Map[K, V] {
	if o.Hasher == nil {
		o.Hasher = keycode.DefaultHasher
	}
	if o.CompactRatio == 0 {
		o.CompactRatio = DefaultCompactRatio
	}
	return &Map[K, V]{
		enc:          enc,
		hasher:       o.Hasher,
		compactRatio: o.CompactRatio,
		s:            newStore[K, V](o.Capacity),
		t:            slottab.New(o.Capacity),
	}
}

// Encoder returns the key encoder of the map.
func (m *Map[K, V]) Encoder() keycode.Encoder[K] { return m.enc }

// Hasher returns the hasher of the map.
func (m *Map[K, V]) Hasher() keycode.Hasher { return m.hasher }

// Code returns the canonical encoding of k and its hash.
func (m *Map[K, V]) Code(k K) (code []byte, hash uint64, err error) {
	var a [64]byte
	if code, err = m.enc.Encode(a[:0], k); err != nil {
		return nil, 0, err
	}
	return code, m.hasher.Hash(code), nil
}

func (m *Map[K, V]) matcher(code []byte) func(int) bool {
	return func(p int) bool { return m.s.codes[p] == string(code) }
}

// find returns the store position of k, or -1 if k doesn't exist
// or is illegal.
func (m *Map[K, V]) find(k K) int {
	code, hash, err := m.Code(k)
	if err != nil {
		return -1
	}
	p, _ := m.t.Find(hash, m.matcher(code))
	return p
}

// Put associates key with value overwriting any existing association.
// A new key is appended to the end of the order, an existing key
// keeps its position.
// Returns an error if key has no canonical encoding.
//
// WARNING: keys are stored as is. Keys of reference types
// (like []byte) must remain immutable for the life-time of the map.
func (m *Map[K, V]) Put(key K, value V) (inserted bool, err error) {
	code, hash, err := m.Code(key)
	if err != nil {
		return false, err
	}
	p, inserted := m.t.Insert(hash, len(m.s.keys), m.matcher(code))
	if !inserted {
		m.s.values[p] = value
		return false, nil
	}
	m.s.append(key, value, string(code), hash)
	return true, nil
}

// Set is equivalent to Put but panics if key is illegal.
func (m *Map[K, V]) Set(key K, value V) {
	if _, err := m.Put(key, value); err != nil {
		panic(fmt.Errorf("setting key: %w", err))
	}
}

// Get returns (value, true) if key exists,
// otherwise returns (zeroValue, false).
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if p := m.find(key); p > -1 {
		return m.s.values[p], true
	}
	return value, false
}

// Has returns true if key exists.
func (m *Map[K, V]) Has(key K) bool {
	return m.find(key) > -1
}

// Index returns the position of key in the iteration order,
// or -1 if key doesn't exist.
func (m *Map[K, V]) Index(key K) int {
	if p := m.find(key); p > -1 {
		return m.s.rank(p)
	}
	return -1
}

// Delete deletes the key if it exists.
// Noop if the key doesn't exist.
func (m *Map[K, V]) Delete(key K) {
	_ = m.Remove(key)
}

// Remove deletes the key and returns true if it existed.
func (m *Map[K, V]) Remove(key K) (removed bool) {
	code, hash, err := m.Code(key)
	if err != nil {
		return false
	}
	p, removed := m.t.Remove(hash, m.matcher(code))
	if !removed {
		return false
	}
	m.s.kill(p)
	if m.compactRatio >= 0 &&
		m.s.garbage() >= compactMinGarbage &&
		float64(m.s.garbage()) > float64(m.s.live)*m.compactRatio {
		m.Compact()
	}
	return true
}

// Compact drops dead positions from the store and rebuilds
// the slot table, which also clears all tombstones.
func (m *Map[K, V]) Compact() {
	m.s.compact()
	m.t.Rebuild(len(m.s.keys), func(p int) (uint64, bool) {
		return m.s.hashes[p], true
	})
}

// Len returns the number of stored key-value pairs.
func (m *Map[K, V]) Len() int { return m.s.live }

// Reset removes all entries keeping the allocated memory.
func (m *Map[K, V]) Reset() {
	m.s.reset()
	m.t.Reset()
}

// Visit calls fn for every stored key-value pair in insertion order.
// Returns immediately if fn returns true.
func (m *Map[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	m.s.visit(func(p int) bool {
		return fn(m.s.keys[p], m.s.values[p])
	})
}

// All returns an iterator over all key-value pairs in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.Visit(func(k K, v V) bool { return !yield(k, v) })
	}
}

// Keys returns all keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.s.live)
	m.Visit(func(k K, _ V) bool {
		keys = append(keys, k)
		return false
	})
	return keys
}

// Values returns all values in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.s.live)
	m.Visit(func(_ K, v V) bool {
		values = append(values, v)
		return false
	})
	return values
}

// Codes calls fn for the canonical encoding of every key
// in insertion order.
func (m *Map[K, V]) Codes(fn func(code string) (stop bool)) {
	m.s.visit(func(p int) bool { return fn(m.s.codes[p]) })
}

// Clone returns an independent copy of the map.
// Keys and values themselves are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		enc:          m.enc,
		hasher:       m.hasher,
		compactRatio: m.compactRatio,
		s:            m.s.clone(),
		t:            m.t.Clone(),
	}
}

// Stats describes the state of a map.
type Stats struct {
	Len int

	// Garbage is the number of dead store positions
	// awaiting compaction.
	Garbage int

	Table slottab.Stats
}

// Stats computes the map statistics.
func (m *Map[K, V]) Stats() Stats {
	return Stats{
		Len:     m.s.live,
		Garbage: m.s.garbage(),
		Table:   m.t.Stats(),
	}
}

// Check verifies the consistency of the store and the slot table:
//
//   - all store slices have equal length.
//   - the table holds exactly one slot per live entry.
//   - every live key still encodes and hashes to its stored code and hash.
//   - probing for every live entry reaches its own position.
//   - every occupied slot refers to a live position.
func (m *Map[K, V]) Check() error {
	n := len(m.s.keys)
	if len(m.s.values) != n || len(m.s.codes) != n || len(m.s.hashes) != n {
		return fmt.Errorf(
			"store length mismatch: keys %d, values %d, codes %d, hashes %d",
			n, len(m.s.values), len(m.s.codes), len(m.s.hashes),
		)
	}
	if g := m.s.dead.Size(); n-g != m.s.live {
		return fmt.Errorf(
			"live count %d doesn't match %d positions with %d dead",
			m.s.live, n, g,
		)
	}
	if m.t.Len() != m.s.live {
		return fmt.Errorf(
			"table holds %d slots for %d live entries",
			m.t.Len(), m.s.live,
		)
	}
	if st := m.t.Stats(); st.Slots != 0 && (!math.IsPow2(st.Slots) ||
		(st.Occupied+st.Tombstones)*4 > st.Slots*3) {
		return fmt.Errorf(
			"illegal table layout: %d slots, %d occupied, %d tombstones",
			st.Slots, st.Occupied, st.Tombstones,
		)
	}

	var err error
	m.s.visit(func(p int) bool {
		code, hash, e := m.Code(m.s.keys[p])
		switch {
		case e != nil:
			err = fmt.Errorf("encoding key at position %d: %w", p, e)
		case string(code) != m.s.codes[p]:
			err = fmt.Errorf("key at position %d was mutated", p)
		case hash != m.s.hashes[p]:
			err = fmt.Errorf("hash of key at position %d changed", p)
		}
		if err != nil {
			return true
		}
		if f, _ := m.t.Find(hash, m.matcher(code)); f != p {
			err = fmt.Errorf("key at position %d resolves to %d", p, f)
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	m.t.Visit(func(hash uint64, p int) bool {
		switch {
		case p >= n:
			err = fmt.Errorf("slot refers to position %d out of %d", p, n)
		case m.s.isDead(p):
			err = fmt.Errorf("slot refers to dead position %d", p)
		case hash != m.s.hashes[p]:
			err = fmt.Errorf("slot hash mismatch at position %d", p)
		}
		return err != nil
	})
	return err
}
