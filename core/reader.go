package core

import (
	"context"
	"io"
)

// readerAt adapts a range-capable ByteSource to io.ReaderAt so decoders can
// reuse parsers built on stdlib-style readers.  The context is captured at
// construction; an adapter lives for a single decode attempt.
type readerAt struct {
	ctx context.Context //nolint:containedctx // scoped to one decode attempt
	src ByteSource
}

// NewReaderAt returns an io.ReaderAt view over src.
func NewReaderAt(ctx context.Context, src ByteSource) io.ReaderAt {
	return &readerAt{ctx: ctx, src: src}
}

func (r *readerAt) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := r.src.ReadRange(r.ctx, off, off+int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, b)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// NewSectionReader returns an io.Reader over the whole of src, sized by
// Length.  Used by decoders that walk chunked containers sequentially.
func NewSectionReader(ctx context.Context, src ByteSource) (*io.SectionReader, error) {
	n, err := src.Length(ctx)
	if err != nil {
		return nil, err
	}
	return io.NewSectionReader(NewReaderAt(ctx, src), 0, n), nil
}

// ReadFull reads exactly n bytes starting at start.  It returns
// io.ErrUnexpectedEOF when the source ends early, mirroring io.ReadFull.
func ReadFull(ctx context.Context, src ByteSource, start int64, n int) ([]byte, error) {
	b, err := src.ReadRange(ctx, start, start+int64(n))
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return b, io.ErrUnexpectedEOF
	}
	return b[:n], nil
}
