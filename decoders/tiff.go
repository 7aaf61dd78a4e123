package decoders

import (
	"context"
	"fmt"

	"github.com/lwj1994/imagemeta/core"
)

// tiffScanLimit bounds how much of a TIFF file is loaded for the IFD walk.
// Header metadata sits near the start in practice; files whose first IFD
// lies beyond the limit report a failure detail instead of reading more.
const tiffScanLimit = 1 << 20

// TIFF reads dimensions, bits per sample, and orientation from the first
// image file directory, honoring both byte orders.
type TIFF struct{}

// NewTIFF returns the built-in TIFF decoder.
func NewTIFF() *TIFF { return &TIFF{} }

func (*TIFF) Name() string { return "tiff" }

func (*TIFF) Valid(ctx context.Context, src core.ByteSource) bool {
	b := sniff(ctx, src, 4)
	return matchMagic(b, "II*\x00") || matchMagic(b, "MM\x00*")
}

func (*TIFF) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	length, err := src.Length(ctx)
	if err != nil {
		return core.Failure(core.MimeTIFF, fmt.Errorf("tiff: source length: %w", err))
	}
	if length > tiffScanLimit {
		length = tiffScanLimit
	}
	data, err := src.ReadRange(ctx, 0, length)
	if err != nil {
		return core.Failure(core.MimeTIFF, fmt.Errorf("tiff: read: %w", err))
	}

	r, ifd, err := newIFDReader(data)
	if err != nil {
		return core.Failure(core.MimeTIFF, err)
	}
	if ifd <= 0 || ifd >= len(data) {
		return core.Failure(core.MimeTIFF, fmt.Errorf("tiff: first IFD at %d is outside the scanned %d bytes", ifd, len(data)))
	}

	var width, height, bits, orientation int
	r.scanIFD(ifd, func(tag, value int) {
		switch tag {
		case tagImageWidth:
			width = value
		case tagImageLength:
			height = value
		case tagBitsPerSample:
			bits = value
		case tagOrientation:
			orientation = value
		}
	})

	if width <= 0 || height <= 0 {
		return core.Failure(core.MimeTIFF, fmt.Errorf("tiff: IFD carries no dimensions"))
	}
	return core.NewMetadata(width, height, bits, core.MimeTIFF, orientation)
}
