package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const DefaultStressOps = 10000
const DefaultStressKeys = 256

// Command can be any of:
//
//	CommandInspect
//	CommandStress
type Command any

type CommandInspect struct {
	ConfigPath string
	TablePath  string
	Delete     []string
	Put        []Assignment
}

type CommandStress struct {
	ConfigPath string
	Ops        int
	Keys       int
	Seed       int64
}

// Assignment is a key=value pair provided through -put.
type Assignment struct {
	Key   string
	Value string
}

var ErrMissingAssignment = errors.New("expected key=value")

type deleteFlag []string

func (f *deleteFlag) String() string { return strings.Join(*f, ",") }

func (f *deleteFlag) Set(s string) error {
	*f = append(*f, s)
	return nil
}

type putFlag []Assignment

func (f *putFlag) String() string {
	var b strings.Builder
	for i, a := range *f {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	return b.String()
}

func (f *putFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return ErrMissingAssignment
	}
	*f = append(*f, Assignment{Key: k, Value: v})
	return nil
}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "odict"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet(executableName, flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" inspect - loads a table and prints the resulting dictionary",
			" stress - runs random operations verifying all invariants",
			" help - prints this help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "inspect":
		c := CommandInspect{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s inspect -table <path> [-config <path>] "+
					"[-delete <key>]... [-put <key>=<value>]...", executableName),
				"",
				"flags:",
				"-table <path>: defines the table file path (.yaml, .yml or .json)",
				"-config <path>: defines the configuration file path",
				"-delete <key>: deletes key from the table (repeatable)",
				"-put <key>=<value>: puts a YAML value after deletion (repeatable)",
			)
		}
		flags.StringVar(&c.ConfigPath, "config", "", "")
		flags.StringVar(&c.TablePath, "table", "", "")
		flags.Var((*deleteFlag)(&c.Delete), "delete", "")
		flags.Var((*putFlag)(&c.Put), "put", "")
		if !parseFlags() {
			return nil
		}
		if c.TablePath == "" {
			writeLines(w, "-table isn't set.")
			flags.Usage()
			return nil
		}
		cmd = c

	case "stress":
		c := CommandStress{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s stress [-config <path>] "+
					"[-ops <n>] [-keys <n>] [-seed <n>]", executableName),
				"",
				"flags:",
				"-config <path>: defines the configuration file path",
				fm("-ops <n>: number of operations (default: %d)",
					DefaultStressOps),
				fm("-keys <n>: size of the key space (default: %d)",
					DefaultStressKeys),
				"-seed <n>: random seed (default: 0)",
			)
		}
		flags.StringVar(&c.ConfigPath, "config", "", "")
		flags.IntVar(&c.Ops, "ops", DefaultStressOps, "")
		flags.IntVar(&c.Keys, "keys", DefaultStressKeys, "")
		flags.Int64Var(&c.Seed, "seed", 0, "")
		if !parseFlags() {
			return nil
		}
		if c.Ops < 0 || c.Keys < 1 {
			writeLines(w, "-ops must not be negative and -keys must be positive.")
			flags.Usage()
			return nil
		}
		cmd = c

	case "help":
		flags.Usage()
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}
