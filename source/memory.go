// Package source provides ByteSource implementations: local files, in-memory
// buffers, HTTP objects, and S3-compatible stores.
package source

import (
	"context"

	"github.com/lwj1994/imagemeta/core"
)

// Bytes serves an image held entirely in memory.  It is range-capable, so it
// also acts as the delegate type the other backends materialize into.
type Bytes struct {
	data []byte
}

// NewBytes creates a Bytes source over b.  The slice is not copied; callers
// must not mutate it while a resolution is in flight.
func NewBytes(b []byte) *Bytes { return &Bytes{data: b} }

// Exists reports false for an empty buffer.
func (b *Bytes) Exists(context.Context) (bool, error) { return len(b.data) > 0, nil }

func (b *Bytes) Length(context.Context) (int64, error) { return int64(len(b.data)), nil }

func (b *Bytes) SupportsRangeRead() bool { return true }

// ReadRange returns the bytes in [start, end), clamped to the buffer.
func (b *Bytes) ReadRange(_ context.Context, start, end int64) ([]byte, error) {
	size := int64(len(b.data))
	if start < 0 || start >= size || end <= start {
		return nil, nil
	}
	if end > size {
		end = size
	}
	return b.data[start:end], nil
}

// Delegate returns the source itself; it is already range-capable.
func (b *Bytes) Delegate(context.Context) (core.ByteSource, error) { return b, nil }

func (b *Bytes) Release(context.Context) error { return nil }
