package core

import (
	"context"
	"time"

	apperrors "github.com/lwj1994/imagemeta/errors"
)

// Resolver orchestrates a resolution: source capability negotiation, then an
// ordered traversal of the registry until the first decoder succeeds.
//
// A single Resolve call is strictly sequential; decoders are never probed in
// parallel because the first success wins and decoders are not guaranteed
// mutually exclusive on malformed input.  Independent Resolve calls may run
// concurrently against independent sources.
type Resolver struct {
	registry *Registry
	logger   Logger
	hooks    []Hook
}

// NewResolver creates a Resolver dispatching over reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{registry: reg, logger: NopLogger{}}
}

// Registry returns the registry this resolver dispatches over.
func (r *Resolver) Registry() *Registry { return r.registry }

// SetLogger attaches a structured logger.
func (r *Resolver) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	r.logger = l
}

// AddHook registers an observer for decode attempts.
func (r *Resolver) AddHook(h Hook) { r.hooks = append(r.hooks, h) }

// Resolve negotiates the source capability, then tries each registered
// decoder in order and returns the first successful extraction.
//
// It fails with errors.ErrSourceNotFound when the source does not exist and
// with errors.ErrUnsupportedFormat when no decoder both claims validity and
// produces a successful extraction.  Per-decoder parse failures are never
// surfaced as errors; they ride inside the candidate Metadata and only the
// last attempted failure detail survives to the terminal error.
func (r *Resolver) Resolve(ctx context.Context, src ByteSource) (Metadata, error) {
	ok, err := src.Exists(ctx)
	if err != nil {
		return None, apperrors.Wrap(apperrors.CategorySource, "resolve.exists", err)
	}
	if !ok {
		return None, apperrors.New(apperrors.CategorySource, "resolve", apperrors.ErrSourceNotFound)
	}

	if !src.SupportsRangeRead() {
		return r.resolveDelegated(ctx, src)
	}

	candidate := None
	for _, dec := range r.registry.Decoders() {
		if err := ctx.Err(); err != nil {
			return None, apperrors.Wrap(apperrors.CategoryProbe, "resolve", err)
		}
		if !dec.Valid(ctx, src) {
			continue
		}

		r.logger.Debug("resolve.decode.start", "decoder", dec.Name())
		for _, h := range r.hooks {
			h.BeforeDecode(ctx, dec.Name())
		}
		start := time.Now()
		candidate = dec.Parse(ctx, src)
		elapsed := time.Since(start)
		for _, h := range r.hooks {
			h.AfterDecode(ctx, dec.Name(), candidate, elapsed)
		}

		if candidate.IsSuccess() {
			r.logger.Debug("resolve.decode.done",
				"decoder", dec.Name(),
				"width", candidate.Width,
				"height", candidate.Height,
				"duration_ms", elapsed.Milliseconds(),
			)
			return candidate, nil
		}
		r.logger.Debug("resolve.decode.failed",
			"decoder", dec.Name(),
			"error", candidate.FailureDetail(),
		)
	}

	return None, apperrors.UnsupportedFormat("resolve", candidate.FailureDetail())
}

// resolveDelegated materializes a range-capable substitute for a source that
// cannot read at arbitrary offsets, resolves against it, and releases it on
// every exit path.  This is a scoped acquisition, not a permanent
// substitution: the original source is untouched.
func (r *Resolver) resolveDelegated(ctx context.Context, src ByteSource) (Metadata, error) {
	r.logger.Debug("resolve.delegate.acquire")
	delegate, err := src.Delegate(ctx)
	if err != nil {
		return None, apperrors.Wrap(apperrors.CategorySource, "resolve.delegate", err)
	}

	meta, resolveErr := r.Resolve(ctx, delegate)
	if releaseErr := delegate.Release(ctx); releaseErr != nil {
		r.logger.Warn("resolve.delegate.release", "error", releaseErr.Error())
		if resolveErr == nil {
			resolveErr = apperrors.Wrap(apperrors.CategorySource, "resolve.release", releaseErr)
		}
	}
	return meta, resolveErr
}
