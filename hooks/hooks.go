// Package hooks provides production-ready Hook and Logger implementations.
package hooks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lwj1994/imagemeta/core"
)

// ── Structured logger adapter ─────────────────────────────────────────────────

// SlogLogger wraps the standard library slog.Logger to satisfy core.Logger.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger creates a logger backed by slog.
func NewSlogLogger(l *slog.Logger) *SlogLogger { return &SlogLogger{log: l} }

func (s *SlogLogger) Debug(msg string, fields ...interface{}) { s.log.Debug(msg, fields...) }
func (s *SlogLogger) Info(msg string, fields ...interface{})  { s.log.Info(msg, fields...) }
func (s *SlogLogger) Warn(msg string, fields ...interface{})  { s.log.Warn(msg, fields...) }
func (s *SlogLogger) Error(msg string, fields ...interface{}) { s.log.Error(msg, fields...) }

// ── Logging hook ──────────────────────────────────────────────────────────────

// LoggingHook logs every decode attempt made by the resolver.
type LoggingHook struct {
	logger core.Logger
}

// NewLoggingHook creates a LoggingHook.
func NewLoggingHook(l core.Logger) *LoggingHook { return &LoggingHook{logger: l} }

func (h *LoggingHook) BeforeDecode(_ context.Context, decoder string) {
	h.logger.Debug("decode.start", "decoder", decoder)
}

func (h *LoggingHook) AfterDecode(_ context.Context, decoder string, meta core.Metadata, d time.Duration) {
	if !meta.IsSuccess() {
		h.logger.Debug("decode.failed",
			"decoder", decoder,
			"duration_ms", d.Milliseconds(),
			"error", meta.FailureDetail(),
		)
		return
	}
	h.logger.Debug("decode.done",
		"decoder", decoder,
		"duration_ms", d.Milliseconds(),
		"mime", meta.MimeType,
		"width", meta.Width,
		"height", meta.Height,
	)
}

// ── In-memory metrics ─────────────────────────────────────────────────────────

// InMemoryMetrics accumulates per-decoder decode statistics; safe for
// concurrent use.  It satisfies core.Hook, so attach it with AddHook.
type InMemoryMetrics struct {
	mu sync.RWMutex

	decodeDurationsMs map[string]int64 // cumulative ms per decoder
	decodeCalls       map[string]int64 // attempt count per decoder
	decodeFailures    map[string]int64
}

// NewInMemoryMetrics creates an empty metrics store.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		decodeDurationsMs: make(map[string]int64),
		decodeCalls:       make(map[string]int64),
		decodeFailures:    make(map[string]int64),
	}
}

// BeforeDecode implements core.Hook.
func (m *InMemoryMetrics) BeforeDecode(context.Context, string) {}

// AfterDecode implements core.Hook.
func (m *InMemoryMetrics) AfterDecode(_ context.Context, decoder string, meta core.Metadata, d time.Duration) {
	m.mu.Lock()
	m.decodeDurationsMs[decoder] += d.Milliseconds()
	m.decodeCalls[decoder]++
	if !meta.IsSuccess() {
		m.decodeFailures[decoder]++
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of current metrics.
func (m *InMemoryMetrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		DecodeDurationsMs: make(map[string]int64, len(m.decodeDurationsMs)),
		DecodeCalls:       make(map[string]int64, len(m.decodeCalls)),
		DecodeFailures:    make(map[string]int64, len(m.decodeFailures)),
	}
	for k, v := range m.decodeDurationsMs {
		snap.DecodeDurationsMs[k] = v
	}
	for k, v := range m.decodeCalls {
		snap.DecodeCalls[k] = v
	}
	for k, v := range m.decodeFailures {
		snap.DecodeFailures[k] = v
	}
	return snap
}

// MetricsSnapshot is an immutable point-in-time copy of metrics.
type MetricsSnapshot struct {
	DecodeDurationsMs map[string]int64
	DecodeCalls       map[string]int64
	DecodeFailures    map[string]int64
}
