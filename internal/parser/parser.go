// Package schema provides the Parser interface for reading schema files
// and converting them to the core.Database representation.
package schema

import (
	"io"
	"path/filepath"

	"oradialect/internal/core"
	"oradialect/internal/parser/toml"
)

type Parser interface {
	Parse(r io.Reader) (*core.Database, error)
	ParseFile(path string) (*core.Database, error)
}

func ParseFile(path string) (*core.Database, error) {
	ext := filepath.Ext(path)

	switch ext {
	case ".toml":
		return toml.NewParser().ParseFile(path)
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported file format: " + e.Path
}
