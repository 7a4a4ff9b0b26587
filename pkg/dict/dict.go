// Package dict provides Dict, an immutable insertion-ordered dictionary
// for keys of any type that can be canonically encoded.
//
// Dict is a value: Put, Update, Delete and Compact never modify the
// receiver, they return a new dictionary that exclusively owns its own
// storage. A Dict can therefore be read from multiple goroutines
// concurrently. Reassigning a shared Dict variable requires external
// synchronization like any other variable.
//
// Every mutation copies the receiver before applying changes,
// so batches should be applied using Update and Delete with
// multiple keys rather than in loops of Put.
package dict

import (
	"fmt"
	"iter"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/graph-guard/odict/pkg/container/ordmap"
	"github.com/graph-guard/odict/pkg/keycode"
)

// Options configures a dictionary.
type Options = ordmap.Options

// Stats describes the internal state of a dictionary.
type Stats = ordmap.Stats

// Entry is a key-value pair.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Dict is an immutable insertion-ordered dictionary.
//
// The zero value is an empty dictionary encoding keys
// with keycode.CBOR, use New to select a specific key encoder.
type Dict[K, V any] struct {
	m *ordmap.Map[K, V]
}

// New creates an empty dictionary using enc to encode keys.
func New[K, V any](enc keycode.Encoder[K], o Options) Dict[K, V] {
	return Dict[K, V]{m: ordmap.New[K, V](enc, o)}
}

// Strings creates an empty dictionary with string keys.
func Strings[V any]() Dict[string, V] {
	return New[string, V](keycode.String{}, Options{})
}

// From creates a dictionary from keys and values of equal length
// preserving their order.
// Returns *ErrorConstraint if the lengths differ, a key is illegal
// or two keys are identical. No keys and no values produce
// an empty dictionary.
func From[K, V any](
	enc keycode.Encoder[K],
	o Options,
	keys []K,
	values []V,
) (Dict[K, V], error) {
	if o.Capacity < len(keys) {
		o.Capacity = len(keys)
	}
	d := New[K, V](enc, o)
	if err := d.validate(keys, values); err != nil {
		return Dict[K, V]{}, err
	}
	for i := range keys {
		d.m.Set(keys[i], values[i])
	}
	return d, nil
}

// FromEntries is equivalent to From with the entries split
// into keys and values.
func FromEntries[K, V any](
	enc keycode.Encoder[K],
	o Options,
	entries ...Entry[K, V],
) (Dict[K, V], error) {
	keys := make([]K, len(entries))
	values := make([]V, len(entries))
	for i, e := range entries {
		keys[i], values[i] = e.Key, e.Value
	}
	return From(enc, o, keys, values)
}

func (d Dict[K, V]) source() *ordmap.Map[K, V] {
	if d.m == nil {
		return ordmap.New[K, V](keycode.CBOR[K]{}, Options{})
	}
	return d.m
}

// clone returns a mutable copy of the receiver's storage.
func (d Dict[K, V]) clone() *ordmap.Map[K, V] {
	if d.m == nil {
		return d.source()
	}
	return d.m.Clone()
}

// validate checks a batch of keys and values before
// it's applied to the dictionary.
func (d Dict[K, V]) validate(keys []K, values []V) error {
	if len(keys) != len(values) {
		return &ErrorConstraint{
			Kind:   LengthMismatch,
			Keys:   len(keys),
			Values: len(values),
		}
	}
	src := d.source()
	seen := ordmap.New[K, int](src.Encoder(), Options{
		Capacity: len(keys),
		Hasher:   src.Hasher(),
	})
	for i, k := range keys {
		// Illegal keys are never found and fail on Put
		if first, ok := seen.Get(k); ok {
			return &ErrorConstraint{Kind: DuplicateKey, Index: i, First: first}
		}
		if _, err := seen.Put(k, i); err != nil {
			return &ErrorConstraint{Kind: IllegalKey, Index: i, Err: err}
		}
	}
	return nil
}

// put sets key to value on m. Existing keys keep their position.
func put[K, V any](m *ordmap.Map[K, V], key K, value V) error {
	_, err := m.Put(key, value)
	return err
}

// Put returns a copy of the dictionary with key associated with value.
// An existing key keeps its position, a new key is appended.
// Panics if key is illegal, use TryPut for keys that may be illegal.
func (d Dict[K, V]) Put(key K, value V) Dict[K, V] {
	n, err := d.TryPut(key, value)
	if err != nil {
		panic(err)
	}
	return n
}

// TryPut is equivalent to Put but returns *ErrorConstraint
// instead of panicking if key is illegal.
func (d Dict[K, V]) TryPut(key K, value V) (Dict[K, V], error) {
	m := d.clone()
	if err := put(m, key, value); err != nil {
		return Dict[K, V]{}, &ErrorConstraint{
			Kind: IllegalKey, Index: -1, Err: err,
		}
	}
	return Dict[K, V]{m: m}, nil
}

// Update returns a copy of the dictionary with all keys associated
// with their respective values in the given order.
// Keys already in the dictionary are overwritten in place.
// The batch itself is validated like in From and nothing is
// applied if it's invalid.
func (d Dict[K, V]) Update(keys []K, values []V) (Dict[K, V], error) {
	if err := d.validate(keys, values); err != nil {
		return Dict[K, V]{}, err
	}
	m := d.clone()
	for i := range keys {
		// Validated above
		_ = put(m, keys[i], values[i])
	}
	return Dict[K, V]{m: m}, nil
}

// Delete returns a copy of the dictionary without the given keys.
// Keys that don't exist are ignored.
func (d Dict[K, V]) Delete(keys ...K) Dict[K, V] {
	m := d.clone()
	for _, k := range keys {
		m.Delete(k)
	}
	return Dict[K, V]{m: m}
}

// Compact returns a copy of the dictionary with the
// storage of deleted entries released.
func (d Dict[K, V]) Compact() Dict[K, V] {
	m := d.clone()
	m.Compact()
	return Dict[K, V]{m: m}
}

// Get returns (value, true) if key exists,
// otherwise returns (zeroValue, false).
func (d Dict[K, V]) Get(key K) (value V, ok bool) {
	if d.m == nil {
		return value, false
	}
	return d.m.Get(key)
}

// GetOr returns the value associated with key,
// or fallback if key doesn't exist.
func (d Dict[K, V]) GetOr(key K, fallback V) V {
	if v, ok := d.Get(key); ok {
		return v
	}
	return fallback
}

// Has returns true if key exists.
func (d Dict[K, V]) Has(key K) bool {
	return d.m != nil && d.m.Has(key)
}

// Index returns the position of key in the iteration order,
// or -1 if key doesn't exist.
func (d Dict[K, V]) Index(key K) int {
	if d.m == nil {
		return -1
	}
	return d.m.Index(key)
}

// Len returns the number of entries.
func (d Dict[K, V]) Len() int {
	if d.m == nil {
		return 0
	}
	return d.m.Len()
}

// IsEmpty returns true if the dictionary has no entries.
func (d Dict[K, V]) IsEmpty() bool { return d.Len() < 1 }

// Visit calls fn for every entry in insertion order.
// Returns immediately if fn returns true.
func (d Dict[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	if d.m != nil {
		d.m.Visit(fn)
	}
}

// All returns an iterator over all entries in insertion order.
func (d Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d.Visit(func(k K, v V) bool { return !yield(k, v) })
	}
}

// Keys returns all keys in insertion order.
func (d Dict[K, V]) Keys() []K { return d.source().Keys() }

// Values returns all values in insertion order.
func (d Dict[K, V]) Values() []V { return d.source().Values() }

// Entries returns all entries in insertion order.
func (d Dict[K, V]) Entries() []Entry[K, V] {
	e := make([]Entry[K, V], 0, d.Len())
	d.Visit(func(k K, v V) bool {
		e = append(e, Entry[K, V]{Key: k, Value: v})
		return false
	})
	return e
}

// Equal returns true if both dictionaries contain identical keys
// in identical order associated with equal values.
// Values are compared using github.com/google/go-cmp which panics
// on unexported struct fields.
func (d Dict[K, V]) Equal(o Dict[K, V]) bool {
	if d.Len() != o.Len() {
		return false
	}
	codes := make([]string, 0, d.Len())
	d.source().Codes(func(c string) bool {
		codes = append(codes, c)
		return false
	})
	i, equal := 0, true
	o.source().Codes(func(c string) bool {
		equal = c == codes[i]
		i++
		return !equal
	})
	return equal && cmp.Equal(d.Values(), o.Values())
}

// Hasher returns the hasher used by the dictionary.
func (d Dict[K, V]) Hasher() keycode.Hasher { return d.source().Hasher() }

// Stats returns the internal storage statistics.
func (d Dict[K, V]) Stats() Stats { return d.source().Stats() }

// Check verifies the internal consistency of the dictionary.
func (d Dict[K, V]) Check() error { return d.source().Check() }

// String formats the dictionary as {k1:v1 k2:v2} in insertion order.
func (d Dict[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	d.Visit(func(k K, v V) bool {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", k, v)
		i++
		return false
	})
	b.WriteByte('}')
	return b.String()
}
