// Package stress drives a dictionary through a random sequence of
// operations verifying its invariants and contents after every step.
package stress

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"

	"github.com/graph-guard/odict/pkg/dict"
	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/phuslu/log"
)

type Options struct {
	// Ops is the number of operations to perform.
	Ops int

	// Keys is the size of the key space.
	// Smaller key spaces produce more updates and deletions of existing keys.
	Keys int

	Seed int64

	Dict dict.Options

	// VerifyEvery defines how often the entire contents are compared
	// against the expected contents, 1 compares after every operation.
	// Zero selects 1.
	VerifyEvery int
}

type Report struct {
	Ops     int
	Puts    int
	Updates int
	Deletes int

	// Rejected is the number of batch updates rejected
	// for containing duplicate keys.
	Rejected int

	MaxLen int
	Final  dict.Stats
}

type ErrorMismatch struct {
	Op      int
	Message string
}

func (e *ErrorMismatch) Error() string {
	return "operation " + strconv.Itoa(e.Op) + ": " + e.Message
}

var ErrNoKeys = errors.New("key space must not be empty")

// model is the reference the dictionary is compared against.
type model struct {
	order  []string
	values map[string]int
}

func (m *model) put(k string, v int) {
	if _, ok := m.values[k]; !ok {
		m.order = append(m.order, k)
	}
	m.values[k] = v
}

func (m *model) delete(k string) {
	if _, ok := m.values[k]; !ok {
		return
	}
	delete(m.values, k)
	m.order = slices.DeleteFunc(m.order, func(x string) bool { return x == k })
}

// Run performs o.Ops random operations.
func Run(o Options, l log.Logger) (Report, error) {
	if o.Keys < 1 {
		return Report{}, ErrNoKeys
	}
	if o.VerifyEvery < 1 {
		o.VerifyEvery = 1
	}
	r := rand.New(rand.NewSource(o.Seed))
	key := func() string { return "k" + strconv.Itoa(r.Intn(o.Keys)) }

	m := &model{values: map[string]int{}}
	d := dict.New[string, int](keycode.String{}, o.Dict)
	var rep Report

	l.Debug().
		Int("ops", o.Ops).
		Int("keys", o.Keys).
		Int64("seed", o.Seed).
		Msg("starting")

	for op := 0; op < o.Ops; op++ {
		prev, prevLen := d, d.Len()

		switch x := r.Intn(10); {
		case x < 5:
			k, v := key(), r.Int()
			d = d.Put(k, v)
			m.put(k, v)
			rep.Puts++

		case x < 7:
			n := 1 + r.Intn(4)
			keys, values := make([]string, n), make([]int, n)
			for i := range keys {
				keys[i], values[i] = key(), r.Int()
			}
			u, err := d.Update(keys, values)
			if err != nil {
				var e *dict.ErrorConstraint
				if !errors.As(err, &e) || e.Kind != dict.DuplicateKey {
					return rep, &ErrorMismatch{Op: op, Message: fmt.Sprintf(
						"unexpected update error: %v", err,
					)}
				}
				if keys[e.Index] != keys[e.First] {
					return rep, &ErrorMismatch{Op: op, Message: fmt.Sprintf(
						"update reported %q and %q as duplicates",
						keys[e.Index], keys[e.First],
					)}
				}
				rep.Rejected++
				break
			}
			d = u
			for i := range keys {
				m.put(keys[i], values[i])
			}
			rep.Updates++

		default:
			n := 1 + r.Intn(3)
			keys := make([]string, n)
			for i := range keys {
				keys[i] = key()
			}
			d = d.Delete(keys...)
			for _, k := range keys {
				m.delete(k)
			}
			rep.Deletes++
		}
		rep.Ops++

		if err := d.Check(); err != nil {
			return rep, &ErrorMismatch{Op: op, Message: err.Error()}
		}
		if prev.Len() != prevLen {
			return rep, &ErrorMismatch{
				Op:      op,
				Message: "previous version was modified",
			}
		}
		if d.Len() != len(m.order) {
			return rep, &ErrorMismatch{Op: op, Message: fmt.Sprintf(
				"expected %d entries, got %d", len(m.order), d.Len(),
			)}
		}
		if d.Len() > rep.MaxLen {
			rep.MaxLen = d.Len()
		}
		if op%o.VerifyEvery == 0 || op == o.Ops-1 {
			if err := verify(d, m); err != "" {
				return rep, &ErrorMismatch{Op: op, Message: err}
			}
			l.Trace().
				Int("op", op).
				Int("len", d.Len()).
				Int("garbage", d.Stats().Garbage).
				Msg("verified")
		}
	}

	rep.Final = d.Stats()
	l.Info().
		Int("ops", rep.Ops).
		Int("puts", rep.Puts).
		Int("updates", rep.Updates).
		Int("deletes", rep.Deletes).
		Int("rejected", rep.Rejected).
		Int("max_len", rep.MaxLen).
		Int("max_probe", rep.Final.Table.MaxProbe).
		Msg("finished")
	return rep, nil
}

func verify(d dict.Dict[string, int], m *model) (err string) {
	i := 0
	d.Visit(func(k string, v int) bool {
		if i >= len(m.order) || m.order[i] != k {
			err = fmt.Sprintf("unexpected key %q at index %d", k, i)
			return true
		}
		if v != m.values[k] {
			err = fmt.Sprintf(
				"unexpected value for %q: %d, expected %d", k, v, m.values[k],
			)
			return true
		}
		if x := d.Index(k); x != i {
			err = fmt.Sprintf("index of %q: %d, expected %d", k, x, i)
			return true
		}
		i++
		return false
	})
	if err == "" && i != len(m.order) {
		err = fmt.Sprintf("visited %d entries, expected %d", i, len(m.order))
	}
	return err
}
