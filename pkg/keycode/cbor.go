package keycode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborMode cbor.EncMode

func init() {
	m, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("initializing CBOR encoding mode: %w", err))
	}
	cborMode = m
}

// CBOR encodes arbitrary keys using the core deterministic CBOR encoding
// (RFC 8949 section 4.2.1): map keys are sorted and numbers use
// their shortest form.
// Suitable for struct, slice, array and map keys.
// Types that can't be represented in CBOR (channels, functions)
// are illegal.
type CBOR[K any] struct{}

func (CBOR[K]) Encode(dst []byte, key K) ([]byte, error) {
	b, err := cborMode.Marshal(key)
	if err != nil {
		return dst, &ErrorIllegal{Key: key, Message: err.Error()}
	}
	return append(dst, b...), nil
}
