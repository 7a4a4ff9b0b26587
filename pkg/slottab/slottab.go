// Package slottab provides an open-addressing hash index that maps
// key hashes to positions in an external store.
// The table never sees keys: identity is decided by a match callback
// the caller provides, hashes are only used to select the probe start
// and to skip slots that can't possibly match.
//
// Collisions are resolved by linear probing with wrap-around.
// Removed slots become tombstones so that probe sequences passing
// through them remain intact. The table grows (or rehashes in place)
// when occupied slots and tombstones exceed 3/4 of its capacity,
// which guarantees that every probe sequence terminates at an empty slot.
package slottab

import (
	"github.com/graph-guard/odict/pkg/math"
)

// MinCapacity is the smallest number of slots a non-empty table has.
const MinCapacity = 8

const (
	refEmpty     = 0
	refTombstone = -1
)

// slot is empty if ref == 0, a tombstone if ref == -1,
// otherwise it holds position ref-1.
type slot struct {
	hash uint64
	ref  int
}

// Table is an open-addressing slot table.
// The zero value is an empty table ready to use.
type Table struct {
	slots      []slot
	occupied   int
	tombstones int
}

// New creates a new table with enough slots to hold
// capacity positions without growing.
func New(capacity int) *Table {
	t := &Table{}
	if capacity > 0 {
		t.slots = make([]slot, slotsFor(capacity))
	}
	return t
}

// slotsFor returns the number of slots required
// to hold n positions below the maximum load factor.
func slotsFor(n int) int {
	return math.Max(MinCapacity, math.NextPow2(n+n/3+1))
}

// Len returns the number of occupied slots.
func (t *Table) Len() int { return t.occupied }

// Cap returns the number of slots.
func (t *Table) Cap() int { return len(t.slots) }

// Tombstones returns the number of tombstone slots.
func (t *Table) Tombstones() int { return t.tombstones }

// Find returns the position stored in the first occupied slot on the
// probe path of hash for which match returns true.
// Returns (-1, false) if the probe reaches an empty slot first.
func (t *Table) Find(hash uint64, match func(pos int) bool) (pos int, found bool) {
	if len(t.slots) < 1 {
		return -1, false
	}
	mask := uint64(len(t.slots) - 1)
	for i, n := hash&mask, 0; n < len(t.slots); i, n = (i+1)&mask, n+1 {
		s := &t.slots[i]
		switch s.ref {
		case refEmpty:
			return -1, false
		case refTombstone:
			continue
		}
		if s.hash == hash && match(s.ref-1) {
			return s.ref - 1, true
		}
	}
	return -1, false
}

// Insert associates hash with pos unless an occupant on the probe path
// of hash matches, in which case the occupant's position is returned
// and the table remains unchanged.
// The first tombstone encountered on the probe path is reused.
func (t *Table) Insert(
	hash uint64,
	pos int,
	match func(pos int) bool,
) (existing int, inserted bool) {
	if (t.occupied+t.tombstones+1)*4 > len(t.slots)*3 {
		t.resize(slotsFor(t.occupied + 1))
	}

	mask := uint64(len(t.slots) - 1)
	free := -1
	for i, n := hash&mask, 0; n < len(t.slots); i, n = (i+1)&mask, n+1 {
		s := &t.slots[i]
		if s.ref == refEmpty {
			if free < 0 {
				free = int(i)
			}
			break
		}
		if s.ref == refTombstone {
			if free < 0 {
				free = int(i)
			}
			continue
		}
		if s.hash == hash && match(s.ref-1) {
			return s.ref - 1, false
		}
	}

	if t.slots[free].ref == refTombstone {
		t.tombstones--
	}
	t.slots[free] = slot{hash: hash, ref: pos + 1}
	t.occupied++
	return pos, true
}

// Remove turns the slot matching hash into a tombstone
// and returns the position it held.
// Noop returning (-1, false) if no occupant matches.
func (t *Table) Remove(hash uint64, match func(pos int) bool) (pos int, removed bool) {
	if len(t.slots) < 1 {
		return -1, false
	}
	mask := uint64(len(t.slots) - 1)
	for i, n := hash&mask, 0; n < len(t.slots); i, n = (i+1)&mask, n+1 {
		s := &t.slots[i]
		switch s.ref {
		case refEmpty:
			return -1, false
		case refTombstone:
			continue
		}
		if s.hash == hash && match(s.ref-1) {
			pos = s.ref - 1
			t.occupied--
			t.vacate(i, mask)
			return pos, true
		}
	}
	return -1, false
}

// vacate frees slot i. No probe sequence can pass through a slot
// followed by an empty slot, so such a slot and the tombstones
// preceding it are emptied instead of being tombstoned.
func (t *Table) vacate(i, mask uint64) {
	if t.slots[(i+1)&mask].ref != refEmpty {
		t.slots[i] = slot{ref: refTombstone}
		t.tombstones++
		return
	}
	t.slots[i] = slot{}
	for j := (i - 1) & mask; t.slots[j].ref == refTombstone; j = (j - 1) & mask {
		t.slots[j] = slot{}
		t.tombstones--
	}
}

// Rehash rebuilds the table in place reinserting every occupied slot
// which clears all tombstones.
func (t *Table) Rehash() {
	t.resize(slotsFor(t.occupied))
}

// Rebuild discards the current contents and inserts positions [0, n)
// for which hashOf reports live = true.
// Positions must refer to distinct keys.
func (t *Table) Rebuild(n int, hashOf func(pos int) (hash uint64, live bool)) {
	size := slotsFor(n)
	if len(t.slots) == size {
		clear(t.slots)
	} else {
		t.slots = make([]slot, size)
	}
	t.occupied, t.tombstones = 0, 0
	for p := 0; p < n; p++ {
		if h, live := hashOf(p); live {
			t.place(h, p)
		}
	}
}

// resize reallocates the table to size slots and reinserts
// all occupied slots.
func (t *Table) resize(size int) {
	old := t.slots
	t.slots = make([]slot, size)
	t.occupied, t.tombstones = 0, 0
	for i := range old {
		if old[i].ref > 0 {
			t.place(old[i].hash, old[i].ref-1)
		}
	}
}

// place occupies the first empty slot on the probe path of hash.
// The key must not yet be in the table and the table must not contain
// tombstones.
func (t *Table) place(hash uint64, pos int) {
	mask := uint64(len(t.slots) - 1)
	i := hash & mask
	for t.slots[i].ref != refEmpty {
		i = (i + 1) & mask
	}
	t.slots[i] = slot{hash: hash, ref: pos + 1}
	t.occupied++
}

// Reset removes all slots keeping the allocated memory.
func (t *Table) Reset() {
	clear(t.slots)
	t.occupied, t.tombstones = 0, 0
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		occupied:   t.occupied,
		tombstones: t.tombstones,
	}
	if t.slots != nil {
		c.slots = make([]slot, len(t.slots))
		copy(c.slots, t.slots)
	}
	return c
}

// Visit calls fn for every occupied slot in slot order.
// Returns immediately if fn returns true.
func (t *Table) Visit(fn func(hash uint64, pos int) (stop bool)) {
	for i := range t.slots {
		if t.slots[i].ref > 0 && fn(t.slots[i].hash, t.slots[i].ref-1) {
			return
		}
	}
}

// Stats describes the state of a table.
type Stats struct {
	Slots      int
	Occupied   int
	Tombstones int

	// MaxProbe is the longest distance between the home slot
	// of a hash and the slot it actually occupies.
	MaxProbe int
}

// Stats computes the table statistics.
func (t *Table) Stats() Stats {
	s := Stats{
		Slots:      len(t.slots),
		Occupied:   t.occupied,
		Tombstones: t.tombstones,
	}
	mask := uint64(len(t.slots) - 1)
	for i := range t.slots {
		if t.slots[i].ref > 0 {
			d := int((uint64(i) - t.slots[i].hash&mask) & mask)
			s.MaxProbe = math.Max(s.MaxProbe, d)
		}
	}
	return s
}
