package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/graph-guard/odict/pkg/config"
	"github.com/phuslu/log"
)

// ReadConfig reads the configuration file at configPath.
// Returns the default configuration if configPath is empty
// and nil if reading failed.
func ReadConfig(w io.Writer, configPath string) *config.Config {
	if configPath == "" {
		return config.Default()
	}
	basePath, fileName := filepath.Split(configPath)
	if basePath == "" {
		basePath = "."
	}
	conf, err := config.Read(os.DirFS(basePath), fileName)
	if err != nil {
		fmt.Fprintf(w, "reading config: %s\n", err)
		return nil
	}
	return conf
}

func newLogger(w io.Writer, conf *config.Config) log.Logger {
	return log.Logger{
		Level:      conf.Level(),
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &log.IOWriter{Writer: w},
	}
}
