// package linear provides an insertion-ordered container.Mapper
// implementation backed by a slice and linear search
// for reference and benchmarks.
package linear

import (
	"fmt"

	"github.com/graph-guard/odict/pkg/keycode"
)

type bucket[K, V any] struct {
	Code  string
	Key   K
	Value V
}

type Linear[K, V any] struct {
	enc keycode.Encoder[K]
	d   []bucket[K, V]
}

func New[K, V any](enc keycode.Encoder[K], capacity int) *Linear[K, V] {
	return &Linear[K, V]{
		enc: enc,
		d:   make([]bucket[K, V], 0, capacity),
	}
}

func (m *Linear[K, V]) index(key K) (code []byte, i int, err error) {
	if code, err = m.enc.Encode(nil, key); err != nil {
		return nil, -1, err
	}
	for i := 0; i < len(m.d); i++ {
		if m.d[i].Code == string(code) {
			return code, i, nil
		}
	}
	return code, -1, nil
}

func (m *Linear[K, V]) Set(key K, value V) {
	code, i, err := m.index(key)
	if err != nil {
		panic(fmt.Errorf("setting key: %w", err))
	}
	if i > -1 {
		m.d[i].Value = value
		return
	}
	m.d = append(m.d, bucket[K, V]{
		Code:  string(code),
		Key:   key,
		Value: value,
	})
}

// Delete removes the key shifting all subsequent pairs
// to preserve the order.
func (m *Linear[K, V]) Delete(key K) {
	if _, i, _ := m.index(key); i > -1 {
		m.d = append(m.d[:i], m.d[i+1:]...)
	}
}

func (m *Linear[K, V]) Get(key K) (v V, ok bool) {
	if _, i, _ := m.index(key); i > -1 {
		return m.d[i].Value, true
	}
	return v, false
}

func (m *Linear[K, V]) Reset() {
	m.d = m.d[:0]
}

func (m *Linear[K, V]) Len() int {
	return len(m.d)
}

func (m *Linear[K, V]) Visit(fn func(K, V) bool) {
	for i := 0; i < len(m.d); i++ {
		if fn(m.d[i].Key, m.d[i].Value) {
			break
		}
	}
}
