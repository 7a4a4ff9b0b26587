// Package header splits the optional front matter header
// off a table file.
//
// A header is a YAML document enclosed in two "---" delimiter lines
// preceding the table body:
//
//	---
//	name: conditions
//	hasher: xxh64
//	---
//	tone: 1
//	noise: 2
package header

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

type Header struct {
	Name   string   `yaml:"name"`
	Tags   []string `yaml:"tags"`
	Hasher string   `yaml:"hasher"`
}

var delimiter = []byte("---")

var ErrExpectedDelimiter = errors.New("expected delimiter")

// Split separates the header from the body.
// header is nil if s has no header. An opening delimiter line without
// a closing one is the YAML document start marker of the body,
// not a header.
func Split(s []byte) (header, body []byte, err error) {
	si := skipBlankLines(s)

	if len(si) < 1 || !bytes.HasPrefix(si, delimiter) {
		return nil, s, nil
	}

	si, ok := endOfDelimiterLine(si[len(delimiter):])
	if !ok || len(si) < 1 {
		return nil, s, nil
	}

	header, body, found, err := splitAtClosing(si)
	if err != nil {
		return nil, s, err
	} else if !found {
		return nil, s, nil
	}
	return header, body, nil
}

// Parse decodes the header and returns the body.
func Parse(s []byte) (h Header, body []byte, err error) {
	header, body, err := Split(s)
	if err != nil {
		return h, nil, err
	} else if header == nil {
		return h, body, nil
	}

	d := yaml.NewDecoder(bytes.NewReader(header))
	d.KnownFields(true)
	if err := d.Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		return Header{}, body, fmt.Errorf("decoding header: %w", err)
	}
	return h, body, nil
}

// endOfDelimiterLine returns what follows the line of a delimiter.
// ok is false if the line contains anything but whitespace.
func endOfDelimiterLine(s []byte) (after []byte, ok bool) {
	for i := range s {
		switch s[i] {
		case '\n':
			return s[i+1:], true
		case ' ', '\t', '\r':
		default:
			return nil, false
		}
	}
	return nil, true
}

// splitAtClosing splits s at the first line starting with the delimiter.
// Returns ErrExpectedDelimiter if that line isn't a bare delimiter.
func splitAtClosing(s []byte) (header, after []byte, found bool, err error) {
	for i := 0; i < len(s); {
		if bytes.HasPrefix(s[i:], delimiter) {
			next, ok := endOfDelimiterLine(s[i+len(delimiter):])
			if !ok {
				return nil, nil, false, ErrExpectedDelimiter
			}
			return s[:i], next, true, nil
		}
		n := bytes.IndexByte(s[i:], '\n')
		if n < 0 {
			break
		}
		i += n + 1
	}
	return nil, nil, false, nil
}

func skipBlankLines(s []byte) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			start = i + 1
			continue
		}
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\r' {
			continue
		}
		break
	}
	return s[start:]
}
