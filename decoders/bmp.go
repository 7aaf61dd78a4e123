package decoders

import (
	"context"
	"fmt"

	"github.com/lwj1994/imagemeta/core"
)

// BMP reads dimensions from the DIB header.  BITMAPINFOHEADER and the later
// V4/V5 variants are supported; height is stored signed (negative means
// top-down rows) and is reported as its magnitude.
type BMP struct{}

// NewBMP returns the built-in BMP decoder.
func NewBMP() *BMP { return &BMP{} }

func (*BMP) Name() string { return "bmp" }

func (*BMP) Valid(ctx context.Context, src core.ByteSource) bool {
	return matchMagic(sniff(ctx, src, 2), magicBMP)
}

func (*BMP) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	// File header (14) + enough of the DIB header for dims and bpp.
	b, err := core.ReadFull(ctx, src, 0, 30)
	if err != nil {
		return core.Failure(core.MimeBMP, fmt.Errorf("bmp: read header: %w", err))
	}

	const (
		infoHeaderLen   = 40
		v4InfoHeaderLen = 108
		v5InfoHeaderLen = 124
	)
	infoLen := u32le(b[14:18])
	if infoLen != infoHeaderLen && infoLen != v4InfoHeaderLen && infoLen != v5InfoHeaderLen {
		return core.Failure(core.MimeBMP, fmt.Errorf("bmp: unsupported DIB header length %d", infoLen))
	}

	width := int(int32(u32le(b[18:22])))
	height := int(int32(u32le(b[22:26])))
	if height < 0 {
		height = -height
	}
	if width <= 0 || height <= 0 {
		return core.Failure(core.MimeBMP, fmt.Errorf("bmp: invalid dimensions %dx%d", width, height))
	}
	return core.NewMetadata(width, height, u16le(b[28:30]), core.MimeBMP, 0)
}
