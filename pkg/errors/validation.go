package errors

import (
	"strings"
	"unicode"
)

// Limits bounds the size of a graph accepted for layout. A zero field means
// no limit.
type Limits struct {
	MaxNodes int
	MaxEdges int
}

// ValidateSize rejects graphs larger than the limits.
func ValidateSize(nodes, edges int, l Limits) error {
	if l.MaxNodes > 0 && nodes > l.MaxNodes {
		return New(ErrCodeInvalidInput, "graph has %d nodes (max %d)", nodes, l.MaxNodes)
	}
	if l.MaxEdges > 0 && edges > l.MaxEdges {
		return New(ErrCodeInvalidInput, "graph has %d edges (max %d)", edges, l.MaxEdges)
	}
	return nil
}

// maxIDLength bounds node and edge identifiers.
const maxIDLength = 256

// ValidateID checks that an identifier is printable and reasonably short.
// IDs end up in DOT output and cache keys.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidGraph, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "%s id %q contains control characters", kind, id)
		}
	}
	return nil
}

// ValidateOutputPath checks a path given for an output file: it must be
// non-empty and free of control characters and null bytes.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}
