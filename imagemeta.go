// Package imagemeta determines the pixel dimensions, color bit depth,
// orientation, and container format of an image by reading only as many
// header bytes as necessary from an arbitrary byte source.  Pixel data is
// never decoded.
package imagemeta

import (
	"context"

	"github.com/lwj1994/imagemeta/config"
	"github.com/lwj1994/imagemeta/core"
	"github.com/lwj1994/imagemeta/decoders"
	"github.com/lwj1994/imagemeta/source"
)

// Re-export MIME constants for convenience.
const (
	JPEG = core.MimeJPEG
	PNG  = core.MimePNG
	GIF  = core.MimeGIF
	WebP = core.MimeWebP
	HEIF = core.MimeHEIF
	BMP  = core.MimeBMP
	TIFF = core.MimeTIFF
)

// DefaultConfig returns sensible production options.
func DefaultConfig() config.Options { return config.Default() }

// Getter is the primary entry point.
type Getter struct {
	resolver *core.Resolver
	cfg      config.Options
}

// New creates a fully wired Getter with the built-in decoders registered in
// their default probing order.  Pass custom config.Options to override
// defaults.
func New(cfg config.Options) *Getter {
	reg := core.NewRegistry()
	reg.Register(decoders.NewJPEG())
	reg.Register(decoders.NewPNG())
	reg.Register(decoders.NewGIF())
	reg.Register(decoders.NewWebP())
	reg.Register(decoders.NewHEIF())
	reg.Register(decoders.NewBMP())
	reg.Register(decoders.NewTIFF())
	return &Getter{resolver: core.NewResolver(reg), cfg: cfg}
}

// Resolver exposes the underlying core.Resolver for advanced use (e.g.,
// direct registry access in tests).  Prefer the high-level API for normal
// usage.
func (g *Getter) Resolver() *core.Resolver { return g.resolver }

// SetLogger attaches a structured logger.
func (g *Getter) SetLogger(l core.Logger) { g.resolver.SetLogger(l) }

// AddHook registers an observer for decode attempts.
func (g *Getter) AddHook(h core.Hook) { g.resolver.AddHook(h) }

// RegisterDecoder registers a custom decoder.  Re-registering an existing
// name replaces the decoder but keeps its probing position.  Not safe for
// concurrent use with in-flight resolutions; register at startup.
func (g *Getter) RegisterDecoder(d core.FormatDecoder) { g.resolver.Registry().Register(d) }

// Resolve extracts metadata from an arbitrary byte source.
func (g *Getter) Resolve(ctx context.Context, src core.ByteSource) (core.Metadata, error) {
	return g.resolver.Resolve(ctx, src)
}

// ResolveFile extracts metadata from a local file.  The file handle is a
// scoped acquisition: it is released before ResolveFile returns.
func (g *Getter) ResolveFile(ctx context.Context, path string) (core.Metadata, error) {
	src := source.NewFile(path)
	meta, err := g.resolver.Resolve(ctx, src)
	if relErr := src.Release(ctx); relErr != nil && err == nil {
		err = relErr
	}
	return meta, err
}

// ResolveBytes extracts metadata from an in-memory image.
func (g *Getter) ResolveBytes(ctx context.Context, b []byte) (core.Metadata, error) {
	return g.resolver.Resolve(ctx, source.NewBytes(b))
}

// ResolveURL extracts metadata from an HTTP(S) object.  Servers advertising
// range support are read with ranged requests; others are buffered whole,
// capped by MaxDelegateBytes.
func (g *Getter) ResolveURL(ctx context.Context, url string) (core.Metadata, error) {
	src := source.NewHTTP(url, source.HTTPOptions{
		Timeout:          g.cfg.HTTPTimeout,
		UserAgent:        g.cfg.UserAgent,
		MaxDelegateBytes: g.cfg.MaxDelegateBytes,
	})
	return g.resolver.Resolve(ctx, src)
}

// ── Process-wide default instance ─────────────────────────────────────────────

// std backs the package-level functions.  Its registry is process-wide
// mutable state: RegisterDecoder calls are not synchronized against
// in-flight resolutions, so register custom decoders at startup.
var std = New(config.Default())

// Resolve extracts metadata using the default Getter.
func Resolve(ctx context.Context, src core.ByteSource) (core.Metadata, error) {
	return std.Resolve(ctx, src)
}

// ResolveFile extracts metadata from a local file using the default Getter.
func ResolveFile(ctx context.Context, path string) (core.Metadata, error) {
	return std.ResolveFile(ctx, path)
}

// ResolveBytes extracts metadata from a byte slice using the default Getter.
func ResolveBytes(ctx context.Context, b []byte) (core.Metadata, error) {
	return std.ResolveBytes(ctx, b)
}

// ResolveURL extracts metadata from a URL using the default Getter.
func ResolveURL(ctx context.Context, url string) (core.Metadata, error) {
	return std.ResolveURL(ctx, url)
}

// RegisterDecoder registers a custom decoder on the default Getter.
func RegisterDecoder(d core.FormatDecoder) { std.RegisterDecoder(d) }
