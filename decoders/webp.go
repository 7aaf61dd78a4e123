package decoders

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/image/riff"

	"github.com/lwj1994/imagemeta/core"
)

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccVP8  = riff.FourCC{'V', 'P', '8', ' '}
	fccVP8L = riff.FourCC{'V', 'P', '8', 'L'}
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
)

// WebP walks the RIFF chunk list until one of the three dimension-bearing
// chunks appears: a VP8 key frame header, a VP8L stream header, or a VP8X
// extended-canvas chunk.
type WebP struct{}

// NewWebP returns the built-in WebP decoder.
func NewWebP() *WebP { return &WebP{} }

func (*WebP) Name() string { return "webp" }

func (*WebP) Valid(ctx context.Context, src core.ByteSource) bool {
	return matchMagic(sniff(ctx, src, 12), magicWebP)
}

func (*WebP) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	sr, err := core.NewSectionReader(ctx, src)
	if err != nil {
		return core.Failure(core.MimeWebP, fmt.Errorf("webp: open: %w", err))
	}
	formType, rr, err := riff.NewReader(sr)
	if err != nil {
		return core.Failure(core.MimeWebP, fmt.Errorf("webp: riff: %w", err))
	}
	if formType != fccWEBP {
		return core.Failure(core.MimeWebP, fmt.Errorf("webp: form type %q", formType[:]))
	}

	for {
		chunkID, chunkLen, chunkData, err := rr.Next()
		if err == io.EOF {
			return core.Failure(core.MimeWebP, fmt.Errorf("webp: no dimension chunk found"))
		}
		if err != nil {
			return core.Failure(core.MimeWebP, fmt.Errorf("webp: riff walk: %w", err))
		}

		switch chunkID {
		case fccVP8:
			width, height, err := vp8FrameDimensions(chunkData)
			if err != nil {
				return core.Failure(core.MimeWebP, err)
			}
			return webpMetadata(width, height)
		case fccVP8L:
			width, height, err := vp8lDimensions(chunkData)
			if err != nil {
				return core.Failure(core.MimeWebP, err)
			}
			return webpMetadata(width, height)
		case fccVP8X:
			if chunkLen != 10 {
				return core.Failure(core.MimeWebP, fmt.Errorf("webp: VP8X length %d, want 10", chunkLen))
			}
			var buf [10]byte
			if _, err := io.ReadFull(chunkData, buf[:]); err != nil {
				return core.Failure(core.MimeWebP, fmt.Errorf("webp: read VP8X: %w", err))
			}
			return webpMetadata(1+u24le(buf[4:7]), 1+u24le(buf[7:10]))
		}
	}
}

func webpMetadata(width, height int) core.Metadata {
	if width <= 0 || height <= 0 {
		return core.Failure(core.MimeWebP, fmt.Errorf("webp: invalid dimensions %dx%d", width, height))
	}
	return core.NewMetadata(width, height, 8, core.MimeWebP, 0)
}

// vp8FrameDimensions reads a VP8 key frame header.
func vp8FrameDimensions(r io.Reader) (int, int, error) {
	var b [10]byte
	if _, err := io.ReadFull(r, b[:3]); err != nil {
		return 0, 0, fmt.Errorf("webp: read VP8 frame tag: %w", err)
	}
	if b[0]&1 != 0 {
		return 0, 0, fmt.Errorf("webp: VP8 chunk starts with an interframe")
	}
	if _, err := io.ReadFull(r, b[3:10]); err != nil {
		return 0, 0, fmt.Errorf("webp: read VP8 key frame header: %w", err)
	}
	if b[3] != 0x9d || b[4] != 0x01 || b[5] != 0x2a {
		return 0, 0, fmt.Errorf("webp: bad VP8 sync code")
	}
	width := int(b[7]&0x3f)<<8 | int(b[6])
	height := int(b[9]&0x3f)<<8 | int(b[8])
	return width, height, nil
}

// vp8lDimensions reads the VP8L stream header: an 0x2f magic byte followed
// by two 14-bit size-minus-one fields.
func vp8lDimensions(r io.Reader) (int, int, error) {
	d := bitReader{r: r}
	magic, err := d.read(8)
	if err != nil {
		return 0, 0, fmt.Errorf("webp: read VP8L magic: %w", err)
	}
	if magic != 0x2f {
		return 0, 0, fmt.Errorf("webp: bad VP8L magic 0x%02x", magic)
	}
	width, err := d.read(14)
	if err != nil {
		return 0, 0, err
	}
	height, err := d.read(14)
	if err != nil {
		return 0, 0, err
	}
	return int(width) + 1, int(height) + 1, nil
}

// bitReader reads little-endian bit fields from a byte stream.
type bitReader struct {
	r     io.Reader
	bits  uint32
	nBits uint32
	buf   [1]byte
}

func (d *bitReader) read(n uint32) (uint32, error) {
	for d.nBits < n {
		if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		d.bits |= uint32(d.buf[0]) << d.nBits
		d.nBits += 8
	}
	u := d.bits & (1<<n - 1)
	d.bits >>= n
	d.nBits -= n
	return u, nil
}
