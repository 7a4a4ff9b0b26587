package stress_test

import (
	"bytes"
	"testing"

	"github.com/graph-guard/odict/pkg/dict"
	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/graph-guard/odict/pkg/stress"
	"github.com/phuslu/log"
	"github.com/stretchr/testify/require"
)

func logger(w *bytes.Buffer, level log.Level) log.Logger {
	return log.Logger{
		Level:  level,
		Writer: &log.IOWriter{Writer: w},
	}
}

func TestRun(t *testing.T) {
	for _, td := range []struct {
		Name string
		Opts stress.Options
	}{
		{"default", stress.Options{Ops: 2000, Keys: 64, Seed: 1}},
		{"small_keyspace", stress.Options{Ops: 2000, Keys: 3, Seed: 2}},
		{"large_keyspace", stress.Options{
			Ops: 3000, Keys: 100000, Seed: 3, VerifyEvery: 50,
		}},
		{"no_compaction", stress.Options{
			Ops: 2000, Keys: 32, Seed: 4,
			Dict: dict.Options{CompactRatio: -1},
		}},
		{"collisions", stress.Options{
			Ops: 1000, Keys: 32, Seed: 5,
			Dict: dict.Options{Hasher: keycode.HasherFunc(
				func(b []byte) uint64 { return uint64(len(b)) },
			)},
		}},
		{"xxh64", stress.Options{
			Ops: 1000, Keys: 64, Seed: 6,
			Dict: dict.Options{Hasher: keycode.XXH64{Seed: 7}},
		}},
		{"circle", stress.Options{
			Ops: 1000, Keys: 64, Seed: 8,
			Dict: dict.Options{Hasher: keycode.Circle{Seed: 9}},
		}},
	} {
		t.Run(td.Name, func(t *testing.T) {
			var out bytes.Buffer
			r, err := stress.Run(td.Opts, logger(&out, log.InfoLevel))
			require.NoError(t, err)
			require.Equal(t, td.Opts.Ops, r.Ops)
			require.Equal(t, r.Ops, r.Puts+r.Updates+r.Deletes+r.Rejected)
			require.NotZero(t, r.Puts)
			require.NotZero(t, r.Deletes)
			require.LessOrEqual(t, r.MaxLen, td.Opts.Keys)
			require.Contains(t, out.String(), `"message":"finished"`)
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	o := stress.Options{Ops: 500, Keys: 16, Seed: 42}
	var out bytes.Buffer
	a, err := stress.Run(o, logger(&out, log.ErrorLevel))
	require.NoError(t, err)
	b, err := stress.Run(o, logger(&out, log.ErrorLevel))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Empty(t, out.String())
}

func TestRunNoKeys(t *testing.T) {
	var out bytes.Buffer
	_, err := stress.Run(stress.Options{Ops: 1}, logger(&out, log.InfoLevel))
	require.ErrorIs(t, err, stress.ErrNoKeys)
}

func TestRunZeroOps(t *testing.T) {
	var out bytes.Buffer
	r, err := stress.Run(stress.Options{Keys: 1}, logger(&out, log.InfoLevel))
	require.NoError(t, err)
	require.Zero(t, r.Ops)
	require.Zero(t, r.Final.Len)
}

func TestErrorMismatch(t *testing.T) {
	err := &stress.ErrorMismatch{Op: 12, Message: "expected 3 entries, got 2"}
	require.Equal(t, "operation 12: expected 3 entries, got 2", err.Error())
}
