package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/graph-guard/odict/pkg/cli"
	"github.com/graph-guard/odict/pkg/tabload"
	"github.com/phuslu/log"
)

// runInspect loads a table, applies the deletions and assignments of c
// and prints the resulting dictionary.
func runInspect(w io.Writer, c cli.CommandInspect) (ok bool) {
	conf := ReadConfig(w, c.ConfigPath)
	if conf == nil {
		return false
	}
	l := newLogger(os.Stderr, conf)
	l.Context = log.NewContext(nil).Str("table", c.TablePath).Value()

	o, err := conf.DictOptions()
	if err != nil {
		l.Error().Err(err).Msg("configuring dictionary")
		return false
	}

	dir, name := filepath.Split(c.TablePath)
	if dir == "" {
		dir = "."
	}
	t, err := tabload.Load(os.DirFS(dir), name)
	if err != nil {
		l.Error().Err(err).Msg("loading table")
		return false
	}
	d, err := t.Dict(o)
	if err != nil {
		l.Error().Err(err).Msg("creating dictionary")
		return false
	}
	l.Debug().
		Str("name", t.Header.Name).
		Int("entries", d.Len()).
		Msg("table loaded")

	if len(c.Delete) > 0 {
		before := d.Len()
		d = d.Delete(c.Delete...)
		l.Debug().
			Int("requested", len(c.Delete)).
			Int("deleted", before-d.Len()).
			Msg("deleted keys")
	}

	if len(c.Put) > 0 {
		keys := make([]string, len(c.Put))
		values := make([]any, len(c.Put))
		for i, a := range c.Put {
			v, err := tabload.ParseValue(a.Value)
			if err != nil {
				l.Error().
					Err(err).
					Str("key", a.Key).
					Msg("parsing value")
				return false
			}
			keys[i], values[i] = a.Key, v
		}
		if d, err = d.Update(keys, values); err != nil {
			l.Error().Err(err).Msg("putting keys")
			return false
		}
	}

	if err := d.Check(); err != nil {
		l.Error().Err(err).Msg("inconsistent dictionary")
		return false
	}

	for i, e := range d.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%v\n", humanize.Comma(int64(i)), e.Key, e.Value)
	}

	s := d.Stats()
	fmt.Fprintf(w,
		"\n%s entries, %s slots (%s occupied, %s tombstones), "+
			"max probe %d, %s dead positions\n",
		humanize.Comma(int64(s.Len)),
		humanize.Comma(int64(s.Table.Slots)),
		humanize.Comma(int64(s.Table.Occupied)),
		humanize.Comma(int64(s.Table.Tombstones)),
		s.Table.MaxProbe,
		humanize.Comma(int64(s.Garbage)),
	)
	return true
}
