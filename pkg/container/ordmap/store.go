package ordmap

import "github.com/yourbasic/bit"

// store holds entries in insertion order in parallel slices.
// Removed entries are marked dead and zeroed but keep their position
// until the store is compacted.
type store[K, V any] struct {
	keys   []K
	values []V
	codes  []string
	hashes []uint64
	dead   *bit.Set
	live   int
}

func newStore[K, V any](capacity int) store[K, V] {
	return store[K, V]{
		keys:   make([]K, 0, capacity),
		values: make([]V, 0, capacity),
		codes:  make([]string, 0, capacity),
		hashes: make([]uint64, 0, capacity),
		dead:   bit.New(),
	}
}

// append adds a new entry and returns its position.
func (s *store[K, V]) append(k K, v V, code string, hash uint64) int {
	s.keys = append(s.keys, k)
	s.values = append(s.values, v)
	s.codes = append(s.codes, code)
	s.hashes = append(s.hashes, hash)
	s.live++
	return len(s.keys) - 1
}

// kill marks the entry at position p dead.
func (s *store[K, V]) kill(p int) {
	var zk K
	var zv V
	s.keys[p], s.values[p], s.codes[p] = zk, zv, ""
	s.dead.Add(p)
	s.live--
}

func (s *store[K, V]) isDead(p int) bool {
	return s.dead.Contains(p)
}

// garbage returns the number of dead positions.
func (s *store[K, V]) garbage() int { return len(s.keys) - s.live }

// visit calls fn for every live position in order.
func (s *store[K, V]) visit(fn func(p int) (stop bool)) {
	if s.live == len(s.keys) {
		for p := range s.keys {
			if fn(p) {
				return
			}
		}
		return
	}
	for p := range s.keys {
		if s.dead.Contains(p) {
			continue
		}
		if fn(p) {
			return
		}
	}
}

// rank returns the number of live positions before p.
func (s *store[K, V]) rank(p int) int {
	r := p
	s.dead.Visit(func(d int) bool {
		if d >= p {
			return true
		}
		r--
		return false
	})
	return r
}

// compact drops all dead entries renumbering the live ones
// while preserving their order.
func (s *store[K, V]) compact() {
	if s.live == len(s.keys) {
		return
	}
	c := newStore[K, V](s.live)
	s.visit(func(p int) bool {
		c.append(s.keys[p], s.values[p], s.codes[p], s.hashes[p])
		return false
	})
	*s = c
}

func (s *store[K, V]) clone() store[K, V] {
	c := store[K, V]{
		keys:   make([]K, len(s.keys)),
		values: make([]V, len(s.values)),
		codes:  make([]string, len(s.codes)),
		hashes: make([]uint64, len(s.hashes)),
		dead:   bit.New().Set(s.dead),
		live:   s.live,
	}
	copy(c.keys, s.keys)
	copy(c.values, s.values)
	copy(c.codes, s.codes)
	copy(c.hashes, s.hashes)
	return c
}

func (s *store[K, V]) reset() {
	clear(s.keys)
	clear(s.values)
	clear(s.codes)
	s.keys, s.values = s.keys[:0], s.values[:0]
	s.codes, s.hashes = s.codes[:0], s.hashes[:0]
	s.dead = bit.New()
	s.live = 0
}
