// Package errors defines the structured error type used throughout the
// module.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling and monitoring.
type Category string

const (
	CategorySource Category = "source"
	CategoryProbe  Category = "probe"
	CategoryDecode Category = "decode"
	CategoryConfig Category = "config"
)

// ResolveError is the structured error type returned by the resolver and the
// byte-source backends.
type ResolveError struct {
	Category Category
	Op       string // operation name
	Err      error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// New creates a ResolveError.
func New(category Category, op string, err error) *ResolveError {
	return &ResolveError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Category == cat
	}
	return false
}

// Sentinel errors for the two terminal failure modes.  Both are
// non-retriable from within the library; retry policy is a caller concern.
var (
	ErrSourceNotFound    = errors.New("image source not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// UnsupportedFormat builds the terminal error for an exhausted probe loop.
// detail is the failure carried by the last attempted extraction, kept for
// diagnostics; it may be nil when no decoder claimed validity at all.
func UnsupportedFormat(op string, detail error) error {
	err := ErrUnsupportedFormat
	if detail != nil {
		err = fmt.Errorf("%w: %w", ErrUnsupportedFormat, detail)
	}
	return New(CategoryDecode, op, err)
}
