package container_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/graph-guard/odict/pkg/container"
)

func forEachImplB(
	b *testing.B,
	fn func(*testing.B, container.Mapper[[]byte, int]),
) {
	for _, impl := range implementations {
		b.Run(impl.Name, func(b *testing.B) {
			fn(b, impl.Make(0))
		})
	}
}

var (
	GI int
	GB bool
)

func BenchmarkAdd(b *testing.B) {
	for _, td := range []int{8, 64, 192, 512, 1024} {
		b.Run(fmt.Sprintf("%v", td), func(b *testing.B) {
			keys := MakeKeys(td)
			forEachImplB(b, func(b *testing.B, m container.Mapper[[]byte, int]) {
				for n := 0; n < b.N; n++ {
					m.Reset()
					for i := 0; i < len(keys); i++ {
						m.Set(keys[i], i)
					}
				}
			})
		})
	}
}

func BenchmarkSet(b *testing.B) {
	for _, td := range []int{8, 64, 192, 512, 1024} {
		b.Run(fmt.Sprintf("%v", td), func(b *testing.B) {
			forEachImplB(b, func(b *testing.B, m container.Mapper[[]byte, int]) {
				keys := SetNewKeys(td, m)
				b.ResetTimer()
				for n := 0; n < b.N; n++ {
					for i := 0; i < len(keys); i++ {
						m.Set(keys[i], n)
					}
				}
			})
		})
	}
}

func BenchmarkGet(b *testing.B) {
	for _, td := range []int{8, 64, 192, 512, 1024} {
		b.Run(fmt.Sprintf("%v", td), func(b *testing.B) {
			forEachImplB(b, func(b *testing.B, m container.Mapper[[]byte, int]) {
				keys := SetNewKeys(td, m)
				b.ResetTimer()
				for n, i := 0, -1; n < b.N; n++ {
					i++
					if i >= len(keys) {
						i = 0
					}
					GI, GB = m.Get(keys[i])
				}
			})
		})
	}
}

// BenchmarkDeleteFirst measures removing the oldest key
// which is the worst case for implementations compacting on delete.
func BenchmarkDeleteFirst(b *testing.B) {
	for _, td := range []int{64, 512, 1024} {
		b.Run(fmt.Sprintf("%v", td), func(b *testing.B) {
			forEachImplB(b, func(b *testing.B, m container.Mapper[[]byte, int]) {
				keys := SetNewKeys(td, m)
				b.ResetTimer()
				for n, i := 0, 0; n < b.N; n++ {
					m.Delete(keys[i])
					m.Set(keys[i], n)
					if i++; i >= len(keys) {
						i = 0
					}
				}
			})
		})
	}
}

func MakeKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = RandBytes(20)
	}
	return keys
}

func SetNewKeys(n int, m container.Mapper[[]byte, int]) [][]byte {
	keys := MakeKeys(n)
	for i := range keys {
		m.Set(keys[i], i)
	}
	return keys
}

func RandBytes(n int) []byte {
	letters := []byte(
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_",
	)
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return b
}
