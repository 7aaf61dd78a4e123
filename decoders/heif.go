package decoders

import (
	"context"
	"fmt"

	"go4.org/media/heif"

	"github.com/lwj1994/imagemeta/core"
)

// heifBrands are the ftyp major brands accepted by the validity probe.
// Both the HEIC variants and AVIF share the HEIF container.
var heifBrands = map[string]bool{
	"heic": true,
	"heix": true,
	"hevc": true,
	"heim": true,
	"heis": true,
	"mif1": true,
	"msf1": true,
	"avif": true,
	"avis": true,
}

// HEIF reads dimensions of the primary item from the ISO BMFF box
// structure via go4.org/media/heif.
type HEIF struct{}

// NewHEIF returns the built-in HEIF decoder.
func NewHEIF() *HEIF { return &HEIF{} }

func (*HEIF) Name() string { return "heif" }

func (*HEIF) Valid(ctx context.Context, src core.ByteSource) bool {
	b := sniff(ctx, src, 12)
	if len(b) < 12 || string(b[4:8]) != "ftyp" {
		return false
	}
	return heifBrands[string(b[8:12])]
}

func (*HEIF) Parse(ctx context.Context, src core.ByteSource) core.Metadata {
	file := heif.Open(core.NewReaderAt(ctx, src))
	item, err := file.PrimaryItem()
	if err != nil {
		return core.Failure(core.MimeHEIF, fmt.Errorf("heif: primary item: %w", err))
	}
	width, height, ok := item.VisualDimensions()
	if !ok || width <= 0 || height <= 0 {
		return core.Failure(core.MimeHEIF, fmt.Errorf("heif: primary item carries no spatial extents"))
	}
	return core.NewMetadata(width, height, 8, core.MimeHEIF, 0)
}
