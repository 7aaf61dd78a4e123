package core

import (
	"context"
	"time"
)

// ByteSource abstracts where image bytes come from (file, memory buffer,
// HTTP object, ...).  Implementations live in source/.
//
// ReadRange returns the bytes in the half-open interval [start, end).  The
// result may be shorter than requested when the source ends before end; an
// error is returned only for I/O failures, never for a short range.
type ByteSource interface {
	// Exists reports whether the underlying resource is present.
	Exists(ctx context.Context) (bool, error)
	// Length returns the total size of the source in bytes.
	Length(ctx context.Context) (int64, error)
	// SupportsRangeRead reports whether ReadRange can serve arbitrary
	// offsets.  Sources that must stream from the start return false and
	// are materialized through Delegate before decoding.
	SupportsRangeRead() bool
	// ReadRange reads the bytes in [start, end).
	ReadRange(ctx context.Context, start, end int64) ([]byte, error)
	// Delegate produces a fully materialized, range-capable substitute for
	// this source.  Callers must Release the delegate when done, on every
	// exit path.
	Delegate(ctx context.Context) (ByteSource, error)
	// Release frees any resources held by the source.
	Release(ctx context.Context) error
}

// FormatDecoder parses the header of one container format.
// Implementations live in decoders/ and must be stateless: a single value is
// shared across concurrent resolutions.
type FormatDecoder interface {
	// Name is the unique registry key for this decoder.
	Name() string
	// Valid is a cheap probe, typically a magic-byte check.  It returns
	// false for malformed or unreadable input and must not panic.
	Valid(ctx context.Context, src ByteSource) bool
	// Parse extracts header metadata.  Malformed-but-plausible input is
	// reported through the failure detail inside the returned Metadata,
	// never through a panic.
	Parse(ctx context.Context, src ByteSource) Metadata
}

// Logger is a minimal structured logging interface.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// NopLogger discards all log output.  It is the default for a Resolver.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// Hook is an optional observer invoked around each decode attempt.
type Hook interface {
	BeforeDecode(ctx context.Context, decoder string)
	AfterDecode(ctx context.Context, decoder string, meta Metadata, d time.Duration)
}
