package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformedInput = errors.New("malformed graph input")
	ErrNodeOutOfRange = errors.New("node index out of range")
)

// LoadError describes where reading a graph went wrong.
type LoadError struct {
	Op      string // Operation that failed (e.g., "open", "parse")
	Path    string // Input path, empty for readers
	Token   int    // 1-based index of the offending token, 0 if not applicable
	Context string // What was being read (e.g., "weight of node 3")
	Cause   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	prefix := e.Op
	if e.Path != "" {
		prefix = fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	if e.Token > 0 {
		return fmt.Sprintf("%s: token %d (%s): %v", prefix, e.Token, e.Context, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", prefix, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
