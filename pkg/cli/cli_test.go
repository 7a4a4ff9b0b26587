package cli_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/graph-guard/odict/pkg/cli"

	"github.com/stretchr/testify/require"
)

func helpOutput(execName string) string {
	return lines(
		fmt.Sprintf("usage: %s <command> [flags]", execName),
		"",
		"commands available:",
		" inspect - loads a table and prints the resulting dictionary",
		" stress - runs random operations verifying all invariants",
		" help - prints this help",
	)
}

func inspectUsage(execName string) string {
	return lines(
		"",
		fmt.Sprintf("usage: %s inspect -table <path> [-config <path>] "+
			"[-delete <key>]... [-put <key>=<value>]...", execName),
		"",
		"flags:",
		"-table <path>: defines the table file path (.yaml, .yml or .json)",
		"-config <path>: defines the configuration file path",
		"-delete <key>: deletes key from the table (repeatable)",
		"-put <key>=<value>: puts a YAML value after deletion (repeatable)",
	)
}

func stressUsage(execName string) string {
	return lines(
		"",
		fmt.Sprintf("usage: %s stress [-config <path>] "+
			"[-ops <n>] [-keys <n>] [-seed <n>]", execName),
		"",
		"flags:",
		"-config <path>: defines the configuration file path",
		"-ops <n>: number of operations (default: 10000)",
		"-keys <n>: size of the key space (default: 256)",
		"-seed <n>: random seed (default: 0)",
	)
}

func TestNoArgs(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, nil)
	require.Nil(t, c)
	require.Equal(t, helpOutput("odict"), out.String())
}

func TestNoCommand(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"execname"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("execname"), out.String())
}

func TestUnknownCommand(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"execname", "unknown-command"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("execname"), out.String())
}

func TestHelp(t *testing.T) {
	out := new(bytes.Buffer)
	c := cli.Parse(out, []string{"/usr/bin/odict", "help"})
	require.Nil(t, c)
	require.Equal(t, helpOutput("odict"), out.String())
}

func TestCommandInspect(t *testing.T) {
	t.Run("table_only", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"odict", "inspect", "-table", "t.yml"})
		require.Equal(t, cli.CommandInspect{TablePath: "t.yml"}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("all_flags", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"odict", "inspect",
			"-config", "./config.yml",
			"-table", "./t.json",
			"-delete", "a",
			"-put", "b=42",
			"-delete", "c",
			"-put", "d=x=y",
			"-put", "e=",
		})
		require.Equal(t, cli.CommandInspect{
			ConfigPath: "./config.yml",
			TablePath:  "./t.json",
			Delete:     []string{"a", "c"},
			Put: []cli.Assignment{
				{Key: "b", Value: "42"},
				{Key: "d", Value: "x=y"},
				{Key: "e", Value: ""},
			},
		}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("missing_table", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"odict", "inspect"})
		require.Nil(t, c)
		require.Equal(t,
			lines("-table isn't set.")+inspectUsage("odict"),
			out.String(),
		)
	})

	t.Run("malformed_put", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"odict", "inspect", "-table", "t.yml", "-put", "novalue",
		})
		require.Nil(t, c)
		require.Equal(t,
			lines(`invalid value "novalue" for flag -put: expected key=value`)+
				inspectUsage("odict"),
			out.String(),
		)
	})

	t.Run("unknown_flags", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"odict", "inspect", "-unknown", "foobar",
		})
		require.Nil(t, c)
		require.Equal(t,
			lines("flag provided but not defined: -unknown")+
				inspectUsage("odict"),
			out.String(),
		)
	})
}

func TestCommandStress(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"odict", "stress"})
		require.Equal(t, cli.CommandStress{
			Ops:  cli.DefaultStressOps,
			Keys: cli.DefaultStressKeys,
		}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("custom", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{
			"odict", "stress",
			"-config", "c.yml",
			"-ops", "500",
			"-keys", "8",
			"-seed", "-3",
		})
		require.Equal(t, cli.CommandStress{
			ConfigPath: "c.yml",
			Ops:        500,
			Keys:       8,
			Seed:       -3,
		}, c)
		require.Equal(t, "", out.String())
	})

	t.Run("illegal_keys", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"odict", "stress", "-keys", "0"})
		require.Nil(t, c)
		require.Equal(t,
			lines("-ops must not be negative and -keys must be positive.")+
				stressUsage("odict"),
			out.String(),
		)
	})

	t.Run("malformed_ops", func(t *testing.T) {
		out := new(bytes.Buffer)
		c := cli.Parse(out, []string{"odict", "stress", "-ops", "many"})
		require.Nil(t, c)
		require.True(t, strings.HasPrefix(
			out.String(), `invalid value "many" for flag -ops`,
		))
		require.True(t, strings.HasSuffix(out.String(), stressUsage("odict")))
	})
}

func lines(lines ...string) string {
	var b strings.Builder
	for i := range lines {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	return b.String()
}
