package config

import (
	"errors"
	"time"
)

// Options is the top-level configuration struct.  All fields have safe
// defaults so callers can start with Default() and override only what they
// need.
type Options struct {
	// MaxDelegateBytes caps how many bytes a non-range-capable source may
	// materialize when the resolver requests a delegate.  0 = no limit.
	MaxDelegateBytes int64

	// HTTP source behaviour.
	HTTPTimeout time.Duration
	UserAgent   string

	// LogLevel controls the slog handler built by hooks.NewSlogLogger
	// helpers: "debug", "info", "warn", "error".
	LogLevel string
}

// Default returns Options populated with sensible production defaults.
func Default() Options {
	return Options{
		MaxDelegateBytes: 64 << 20, // 64 MiB
		HTTPTimeout:      30 * time.Second,
		UserAgent:        "imagemeta/1",
		LogLevel:         "info",
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(o Options) error {
	if o.MaxDelegateBytes < 0 {
		return errors.New("config: MaxDelegateBytes must not be negative")
	}
	if o.HTTPTimeout < 0 {
		return errors.New("config: HTTPTimeout must not be negative")
	}
	switch o.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New("config: LogLevel must be one of debug, info, warn, error")
	}
	return nil
}
