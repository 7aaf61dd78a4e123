package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrDelegateTooLarge is returned when materializing a non-range-capable
// source would exceed the configured byte limit.
var ErrDelegateTooLarge = errors.New("source: delegate exceeds configured size limit")

// bufPool reuses byte buffers to reduce GC pressure while draining bodies.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

func acquireBuffer() *bytes.Buffer {
	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func releaseBuffer(b *bytes.Buffer) {
	// Cap large buffers to avoid pinning excessive memory.
	if b.Cap() > 8*1024*1024 {
		return
	}
	bufPool.Put(b)
}

// drain reads all bytes from r, failing once more than max bytes arrive
// (max <= 0 disables the limit).  The returned slice is an independent copy,
// safe to hold after the pooled buffer is recycled.
func drain(ctx context.Context, r io.Reader, max int64) ([]byte, error) {
	buf := acquireBuffer()
	defer releaseBuffer(buf)

	chunk := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if max > 0 && int64(buf.Len()) > max {
				return nil, ErrDelegateTooLarge
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return cloneBytes(buf.Bytes()), nil
}

// cloneBytes returns a copy of b, safe for use after the source buffer is
// released.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
