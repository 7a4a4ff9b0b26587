package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/graph-guard/odict/pkg/cli"
	"github.com/graph-guard/odict/pkg/stress"
	"github.com/phuslu/log"
)

// runStress runs the randomized invariant checker.
func runStress(w io.Writer, c cli.CommandStress) (ok bool) {
	conf := ReadConfig(w, c.ConfigPath)
	if conf == nil {
		return false
	}
	l := newLogger(os.Stderr, conf)
	l.Context = log.NewContext(nil).Str("command", "stress").Value()

	o, err := conf.DictOptions()
	if err != nil {
		l.Error().Err(err).Msg("configuring dictionary")
		return false
	}

	start := time.Now()
	r, err := stress.Run(stress.Options{
		Ops:         c.Ops,
		Keys:        c.Keys,
		Seed:        c.Seed,
		Dict:        o,
		VerifyEvery: 1,
	}, l)
	if err != nil {
		l.Error().Err(err).Int("ops_done", r.Ops).Msg("stress test failed")
		return false
	}

	fmt.Fprintf(w,
		"%s operations in %s: %s puts, %s updates (%s rejected), %s deletes\n"+
			"max %s entries, final %s entries in %s slots, max probe %d\n",
		humanize.Comma(int64(r.Ops)),
		time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(r.Puts)),
		humanize.Comma(int64(r.Updates)),
		humanize.Comma(int64(r.Rejected)),
		humanize.Comma(int64(r.Deletes)),
		humanize.Comma(int64(r.MaxLen)),
		humanize.Comma(int64(r.Final.Len)),
		humanize.Comma(int64(r.Final.Table.Slots)),
		r.Final.Table.MaxProbe,
	)
	return true
}
