package decoders

import (
	"context"
	"fmt"

	"github.com/lwj1994/imagemeta/core"
)

// JPEG walks the segment chain after the SOI marker looking for a start of
// frame, which carries the sample precision and dimensions.  An APP1 EXIF
// segment seen before the frame contributes the orientation code.
type JPEG struct{}

// NewJPEG returns the built-in JPEG decoder.
func NewJPEG() *JPEG { return &JPEG{} }

func (*JPEG) Name() string { return "jpeg" }

func (*JPEG) Valid(ctx context.Context, src core.ByteSource) bool {
	return matchMagic(sniff(ctx, src, 3), magicJPEG)
}

func (*JPEG) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	offset := int64(2) // past SOI
	orientation := 0

	for {
		b, err := core.ReadFull(ctx, src, offset, 4)
		if err != nil {
			return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: read segment at %d: %w", offset, err))
		}
		if b[0] != 0xFF {
			return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: expected marker at %d, got 0x%02x", offset, b[0]))
		}
		marker := b[1]

		switch {
		case marker == 0xFF:
			// Fill byte before the real marker.
			offset++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			// TEM / restart markers carry no length.
			offset += 2
			continue
		case marker == 0xD9 || marker == 0xDA:
			// EOI or start of scan: no frame header was seen.
			return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: no start-of-frame before marker 0x%02x", marker))
		}

		segLen := u16be(b[2:4])
		if segLen < 2 {
			return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: invalid segment length %d", segLen))
		}

		switch {
		case isSOF(marker):
			p, err := core.ReadFull(ctx, src, offset+4, 5)
			if err != nil {
				return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: read frame header: %w", err))
			}
			precision := int(p[0])
			height := u16be(p[1:3])
			width := u16be(p[3:5])
			if width <= 0 || height <= 0 {
				return core.Failure(core.MimeJPEG, fmt.Errorf("jpeg: invalid dimensions %dx%d", width, height))
			}
			return core.NewMetadata(width, height, precision, core.MimeJPEG, orientation)

		case marker == 0xE1 && segLen > 8:
			// APP1: may hold EXIF.  A short or unreadable payload is not
			// fatal; the walk continues without orientation.
			payload, err := core.ReadFull(ctx, src, offset+4, segLen-2)
			if err == nil && len(payload) >= 6 && string(payload[:6]) == "Exif\x00\x00" {
				if o, ok := exifOrientation(payload[6:]); ok {
					orientation = o
				}
			}
		}

		offset += 2 + int64(segLen)
	}
}

// isSOF reports whether marker is a start-of-frame.  0xC4 (DHT), 0xC8 (JPG)
// and 0xCC (DAC) share the range but are not frames.
func isSOF(marker byte) bool {
	if marker < 0xC0 || marker > 0xCF {
		return false
	}
	return marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}
