package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by [Read] and [Write].
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned when a format or file extension is not
// one of the supported encodings.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat converts a user-supplied name ("json", "yaml", "yml") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// Read decodes a graph document from r, fills in missing edge IDs, and
// validates it. Read does not close r.
func Read(r io.Reader, format Format) (*Graph, error) {
	var g Graph
	if err := decode(r, format, &g); err != nil {
		return nil, err
	}
	g.Normalize()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadFile reads a graph document from path. The format is inferred from the
// file extension.
func ReadFile(path string) (*Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Write encodes v (a *Graph or *Result) to w.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteFile writes v to path, inferring the format from the extension.
func WriteFile(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, v, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadResult decodes a result document from r.
func ReadResult(r io.Reader, format Format) (*Result, error) {
	var res Result
	if err := decode(r, format, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func decode(r io.Reader, format Format, v any) error {
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
