// Package parsers reads person/interest pairs from external files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawLink is one person/interest pair as read from a file, before validation.
type RawLink struct {
	Person   string `json:"person"`
	Interest string `json:"interest"`
	LineNum  int    `json:"-"` // set by the parser
}

// Parser reads links from a stream.
type Parser interface {
	Parse(r io.Reader) ([]RawLink, error)
}

// ForFormat returns the parser for format, or nil when unsupported.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the parser matching the file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
