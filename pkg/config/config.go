package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/graph-guard/odict/pkg/container/ordmap"
	"github.com/graph-guard/odict/pkg/dict"
	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/phuslu/log"
	yaml "gopkg.in/yaml.v3"
)

const DefaultLogLevel = "info"

// LogLevels lists all accepted values of log-level.
var LogLevels = []string{"trace", "debug", "info", "warn", "error"}

type Config struct {
	FilePath     string
	Hasher       string
	Seed         uint64
	Capacity     int
	CompactRatio float64
	LogLevel     string
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Hasher:       keycode.HasherNameXXH3,
		CompactRatio: ordmap.DefaultCompactRatio,
		LogLevel:     DefaultLogLevel,
	}
}

// DictOptions returns the dictionary options defined by c.
func (c *Config) DictOptions() (dict.Options, error) {
	h, err := keycode.HasherByName(c.Hasher, c.Seed)
	if err != nil {
		return dict.Options{}, err
	}
	return dict.Options{
		Capacity:     c.Capacity,
		Hasher:       h,
		CompactRatio: c.CompactRatio,
	}, nil
}

// Level returns the log level defined by c.
func (c *Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}

type file struct {
	Hasher       string   `yaml:"hasher"`
	Seed         uint64   `yaml:"seed"`
	Capacity     int      `yaml:"capacity"`
	CompactRatio *float64 `yaml:"compact-ratio"`
	LogLevel     string   `yaml:"log-level"`
}

// Read reads the configuration file at filePath from filesystem.
func Read(filesystem fs.FS, filePath string) (*Config, error) {
	f, err := filesystem.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrorMissing{FilePath: filePath}
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	var c file
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Feature:  "syntax",
			Message:  err.Error(),
		}
	}

	conf := Default()
	conf.FilePath = filePath

	if c.Hasher != "" {
		if _, err := keycode.HasherByName(c.Hasher, c.Seed); err != nil {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "hasher",
				Message:  err.Error(),
			}
		}
		conf.Hasher = c.Hasher
	}
	conf.Seed = c.Seed

	if c.Capacity < 0 {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Feature:  "capacity",
			Message:  "must not be negative",
		}
	}
	conf.Capacity = c.Capacity

	if c.CompactRatio != nil {
		if *c.CompactRatio == 0 {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "compact-ratio",
				Message:  "must not be zero, use a negative value to disable",
			}
		}
		conf.CompactRatio = *c.CompactRatio
	}

	if c.LogLevel != "" {
		if !validLogLevel(c.LogLevel) {
			return nil, &ErrorIllegal{
				FilePath: filePath,
				Feature:  "log-level",
				Message: fmt.Sprintf(
					"%q, expected any of: %s",
					c.LogLevel, strings.Join(LogLevels, ", "),
				),
			}
		}
		conf.LogLevel = c.LogLevel
	}

	return conf, nil
}

func validLogLevel(l string) bool {
	for _, x := range LogLevels {
		if x == l {
			return true
		}
	}
	return false
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.Grow(len("missing ") + len(e.FilePath))
		b.WriteString("missing ")
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.Grow(len("missing ") + len(e.Feature) + len(" in ") + len(e.FilePath))
	b.WriteString("missing ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.Grow(len("illegal ") +
		len(e.Feature) +
		len(" in ") +
		len(e.FilePath) +
		len(": ") +
		len(e.Message))
	b.WriteString("illegal ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
