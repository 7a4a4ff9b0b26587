// Package container defines the contract shared by all
// mutable map implementations.
package container

// Mapper is a mutable key-value map.
// Implementations panic when Set is given a key
// that has no canonical encoding.
type Mapper[K, V any] interface {
	Set(K, V)
	Get(K) (v V, ok bool)
	Reset()
	Len() int
	Delete(K)

	// Visit calls fn for every stored key-value pair
	// and returns immediately if fn returns true.
	Visit(fn func(K, V) (stop bool))
}
