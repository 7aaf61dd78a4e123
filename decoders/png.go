package decoders

import (
	"context"
	"fmt"

	"github.com/lwj1994/imagemeta/core"
)

// PNG reads dimensions and bit depth from the IHDR chunk, which the PNG
// specification requires to be the first chunk after the signature.
type PNG struct{}

// NewPNG returns the built-in PNG decoder.
func NewPNG() *PNG { return &PNG{} }

func (*PNG) Name() string { return "png" }

func (*PNG) Valid(ctx context.Context, src core.ByteSource) bool {
	return matchMagic(sniff(ctx, src, 8), magicPNG)
}

func (*PNG) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	// Signature (8) + chunk length (4) + "IHDR" (4) + width (4) +
	// height (4) + bit depth (1) + color type (1).
	b, err := core.ReadFull(ctx, src, 0, 26)
	if err != nil {
		return core.Failure(core.MimePNG, fmt.Errorf("png: read header: %w", err))
	}
	if string(b[12:16]) != "IHDR" {
		return core.Failure(core.MimePNG, fmt.Errorf("png: first chunk is %q, want IHDR", b[12:16]))
	}

	width := u32be(b[16:20])
	height := u32be(b[20:24])
	if width <= 0 || height <= 0 {
		return core.Failure(core.MimePNG, fmt.Errorf("png: invalid dimensions %dx%d", width, height))
	}
	return core.NewMetadata(width, height, int(b[24]), core.MimePNG, 0)
}
