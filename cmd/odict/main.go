package main

import (
	"fmt"
	"os"

	"github.com/graph-guard/odict/pkg/cli"
)

func main() {
	w := os.Stdout
	var ok bool
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandInspect:
		ok = runInspect(w, c)
	case cli.CommandStress:
		ok = runStress(w, c)
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
		ok = true
	}
	if !ok {
		os.Exit(1)
	}
}
