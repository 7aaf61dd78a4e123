package decoders

import (
	"context"
	"fmt"

	"github.com/lwj1994/imagemeta/core"
)

// GIF reads dimensions from the logical screen descriptor that directly
// follows the "GIF87a"/"GIF89a" signature.
type GIF struct{}

// NewGIF returns the built-in GIF decoder.
func NewGIF() *GIF { return &GIF{} }

func (*GIF) Name() string { return "gif" }

func (*GIF) Valid(ctx context.Context, src core.ByteSource) bool {
	b := sniff(ctx, src, 6)
	if !matchMagic(b, magicGIF) {
		return false
	}
	return b[4] == '7' || b[4] == '9'
}

func (*GIF) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	// Signature (6) + width (2 LE) + height (2 LE) + packed fields (1).
	b, err := core.ReadFull(ctx, src, 0, 11)
	if err != nil {
		return core.Failure(core.MimeGIF, fmt.Errorf("gif: read screen descriptor: %w", err))
	}

	width := u16le(b[6:8])
	height := u16le(b[8:10])
	if width <= 0 || height <= 0 {
		return core.Failure(core.MimeGIF, fmt.Errorf("gif: invalid dimensions %dx%d", width, height))
	}
	// Low three packed bits encode the global color table size exponent.
	bitDepth := int(b[10]&0x07) + 1
	return core.NewMetadata(width, height, bitDepth, core.MimeGIF, 0)
}
