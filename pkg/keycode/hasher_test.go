package keycode_test

import (
	"testing"

	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/graph-guard/odict/pkg/xxhash"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestHasherByName(t *testing.T) {
	for _, td := range []struct {
		Name   string
		Expect keycode.Hasher
	}{
		{"", keycode.XXH3{Seed: 7}},
		{keycode.HasherNameXXH3, keycode.XXH3{Seed: 7}},
		{keycode.HasherNameXXH64, keycode.XXH64{Seed: 7}},
		{keycode.HasherNameCircle, keycode.Circle{Seed: 7}},
	} {
		t.Run(td.Name, func(t *testing.T) {
			h, err := keycode.HasherByName(td.Name, 7)
			require.NoError(t, err)
			require.Equal(t, td.Expect, h)
		})
	}

	h, err := keycode.HasherByName("md5", 0)
	require.Error(t, err)
	require.Nil(t, h)
	require.Equal(t, `unknown hasher "md5"`, err.Error())
}

func TestHashers(t *testing.T) {
	in := []byte("condition_A")
	for _, h := range []keycode.Hasher{
		keycode.XXH3{}, keycode.XXH3{Seed: 1},
		keycode.XXH64{}, keycode.XXH64{Seed: 1},
		keycode.Circle{}, keycode.Circle{Seed: 1},
	} {
		require.Equal(t, h.Hash(in), h.Hash(in))
		require.NotEqual(t, h.Hash(in), h.Hash([]byte("condition_B")))
	}
	require.Equal(t, xxh3.Hash(in), keycode.XXH3{}.Hash(in))
	require.Equal(t, xxh3.HashSeed(in, 5), keycode.XXH3{Seed: 5}.Hash(in))
	require.Equal(t, xxhash.Sum64(in, 5), keycode.XXH64{Seed: 5}.Hash(in))
	require.NotEqual(t, keycode.Circle{}.Hash(in), keycode.Circle{Seed: 1}.Hash(in))
}

func TestHasherFunc(t *testing.T) {
	h := keycode.HasherFunc(func(b []byte) uint64 { return uint64(len(b)) })
	require.Equal(t, uint64(3), h.Hash([]byte("abc")))
}
