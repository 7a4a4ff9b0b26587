package dict

import (
	"errors"
	"strconv"
	"strings"
)

// ErrConstraintViolation is matched by every *ErrorConstraint
// using errors.Is.
var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintKind identifies the constraint that was violated.
type ConstraintKind int8

const (
	_ ConstraintKind = iota

	// LengthMismatch is reported when the number of keys differs
	// from the number of values.
	LengthMismatch

	// DuplicateKey is reported when two keys of the same batch
	// have identical canonical encodings.
	DuplicateKey

	// IllegalKey is reported when a key has no canonical encoding.
	IllegalKey
)

func (k ConstraintKind) String() string {
	switch k {
	case LengthMismatch:
		return "length mismatch"
	case DuplicateKey:
		return "duplicate key"
	case IllegalKey:
		return "illegal key"
	}
	return "unknown"
}

// ErrorConstraint is returned when constructing or updating
// a dictionary with an invalid batch of keys and values.
type ErrorConstraint struct {
	Kind ConstraintKind

	// Keys and Values are the batch lengths (LengthMismatch).
	Keys, Values int

	// Index is the index of the offending key within the batch
	// (DuplicateKey, IllegalKey). It's -1 for a single key
	// passed to TryPut.
	Index int

	// First is the index of the first occurrence
	// of a duplicate key (DuplicateKey).
	First int

	// Err is the encoder error (IllegalKey).
	Err error
}

func (e *ErrorConstraint) Error() string {
	var b strings.Builder
	b.WriteString(ErrConstraintViolation.Error())
	b.WriteString(": ")
	switch e.Kind {
	case LengthMismatch:
		b.WriteString(strconv.Itoa(e.Keys))
		b.WriteString(" keys but ")
		b.WriteString(strconv.Itoa(e.Values))
		b.WriteString(" values")
	case DuplicateKey:
		b.WriteString("duplicate key at index ")
		b.WriteString(strconv.Itoa(e.Index))
		b.WriteString(" (first at index ")
		b.WriteString(strconv.Itoa(e.First))
		b.WriteString(")")
	case IllegalKey:
		b.WriteString("illegal key")
		if e.Index > -1 {
			b.WriteString(" at index ")
			b.WriteString(strconv.Itoa(e.Index))
		}
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
	default:
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

func (e *ErrorConstraint) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ErrorConstraint) Unwrap() error { return e.Err }
