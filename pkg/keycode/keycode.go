// Package keycode turns keys of arbitrary type into canonical byte
// sequences. Two keys are considered identical if and only if
// their canonical encodings are byte-identical.
// Hashes computed over canonical encodings are only ever used to
// select a slot, never to decide key identity.
package keycode

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Encoder appends the canonical encoding of key to dst.
// Encode must be deterministic and injective modulo key identity.
// An error means key has no canonical encoding and can't be used as a key.
type Encoder[K any] interface {
	Encode(dst []byte, key K) ([]byte, error)
}

// Canonical is implemented by key types that know
// how to encode themselves.
type Canonical interface {
	AppendCanonical(dst []byte) ([]byte, error)
}

// Func adapts an ordinary function to the Encoder interface.
type Func[K any] func(dst []byte, key K) ([]byte, error)

func (fn Func[K]) Encode(dst []byte, key K) ([]byte, error) {
	return fn(dst, key)
}

// Self encodes keys implementing Canonical.
type Self[K Canonical] struct{}

func (Self[K]) Encode(dst []byte, key K) ([]byte, error) {
	return key.AppendCanonical(dst)
}

// String encodes strings as their raw bytes.
type String struct{}

func (String) Encode(dst []byte, key string) ([]byte, error) {
	return append(dst, key...), nil
}

// Bytes encodes byte slices as is.
//
// WARNING: dictionaries keep a reference to []byte keys.
// Make sure keys remain immutable for as long as they're in use.
type Bytes struct{}

func (Bytes) Encode(dst []byte, key []byte) ([]byte, error) {
	return append(dst, key...), nil
}

// Bool encodes booleans as a single byte.
type Bool struct{}

func (Bool) Encode(dst []byte, key bool) ([]byte, error) {
	if key {
		return append(dst, 1), nil
	}
	return append(dst, 0), nil
}

// Int encodes integers as 8 bytes big-endian.
type Int[T constraints.Integer] struct{}

func (Int[T]) Encode(dst []byte, key T) ([]byte, error) {
	return binary.BigEndian.AppendUint64(dst, uint64(key)), nil
}

// Float encodes floating point numbers as the big-endian IEEE 754
// bits of their float64 representation.
// Negative zero is encoded as positive zero, NaN is illegal
// since it isn't equal to itself.
type Float[T constraints.Float] struct{}

func (Float[T]) Encode(dst []byte, key T) ([]byte, error) {
	f := float64(key)
	if math.IsNaN(f) {
		return dst, &ErrorIllegal{Key: key, Message: "NaN has no identity"}
	}
	if f == 0 {
		f = 0
	}
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(f)), nil
}

// UUID encodes UUIDs as their 16 raw bytes.
type UUID struct{}

func (UUID) Encode(dst []byte, key uuid.UUID) ([]byte, error) {
	return append(dst, key[:]...), nil
}

// Pair is a composite key of two components.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf encodes Pair keys. The encoding of the first component is
// prefixed with its length so that the boundary between both
// components is unambiguous.
type PairOf[A, B any] struct {
	First  Encoder[A]
	Second Encoder[B]
}

func (e PairOf[A, B]) Encode(dst []byte, key Pair[A, B]) ([]byte, error) {
	a, err := e.First.Encode(nil, key.First)
	if err != nil {
		return dst, err
	}
	dst = binary.AppendUvarint(dst, uint64(len(a)))
	dst = append(dst, a...)
	return e.Second.Encode(dst, key.Second)
}

// Strings encodes string slices. Every element is prefixed
// with its length.
type Strings struct{}

func (Strings) Encode(dst []byte, key []string) ([]byte, error) {
	dst = binary.AppendUvarint(dst, uint64(len(key)))
	for _, s := range key {
		dst = binary.AppendUvarint(dst, uint64(len(s)))
		dst = append(dst, s...)
	}
	return dst, nil
}

// ErrorIllegal is returned for keys that have no canonical encoding.
type ErrorIllegal struct {
	Key     any
	Message string
}

func (e *ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal key")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}
