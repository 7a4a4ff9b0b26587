// package gomap provides an insertion-ordered container.Mapper
// implementation indexed by Go's native map for benchmark reference.
// Deletion compacts the order immediately renumbering
// all subsequent entries.
package gomap

import (
	"fmt"

	"github.com/graph-guard/odict/pkg/keycode"
)

type entry[K, V any] struct {
	Code  string
	Key   K
	Value V
}

type Gomap[K, V any] struct {
	enc   keycode.Encoder[K]
	index map[string]int
	order []entry[K, V]
}

func New[K, V any](enc keycode.Encoder[K], capacity int) *Gomap[K, V] {
	return &Gomap[K, V]{
		enc:   enc,
		index: make(map[string]int, capacity),
		order: make([]entry[K, V], 0, capacity),
	}
}

func (m *Gomap[K, V]) Set(key K, value V) {
	code, err := m.enc.Encode(nil, key)
	if err != nil {
		panic(fmt.Errorf("setting key: %w", err))
	}
	if i, ok := m.index[string(code)]; ok {
		m.order[i].Value = value
		return
	}
	m.index[string(code)] = len(m.order)
	m.order = append(m.order, entry[K, V]{
		Code:  string(code),
		Key:   key,
		Value: value,
	})
}

func (m *Gomap[K, V]) Delete(key K) {
	code, err := m.enc.Encode(nil, key)
	if err != nil {
		return
	}
	i, ok := m.index[string(code)]
	if !ok {
		return
	}
	delete(m.index, string(code))
	m.order = append(m.order[:i], m.order[i+1:]...)
	for ; i < len(m.order); i++ {
		m.index[m.order[i].Code] = i
	}
}

func (m *Gomap[K, V]) Get(key K) (v V, ok bool) {
	code, err := m.enc.Encode(nil, key)
	if err != nil {
		return v, false
	}
	if i, ok := m.index[string(code)]; ok {
		return m.order[i].Value, true
	}
	return v, false
}

func (m *Gomap[K, V]) Reset() {
	clear(m.index)
	m.order = m.order[:0]
}

func (m *Gomap[K, V]) Len() int {
	return len(m.order)
}

func (m *Gomap[K, V]) Visit(fn func(K, V) bool) {
	for i := range m.order {
		if fn(m.order[i].Key, m.order[i].Value) {
			break
		}
	}
}
