package core

import "strings"

// MIME types of the built-in container formats.  Every decoder reports one
// of these (or its own "image/"-prefixed type for custom formats).
const (
	MimeUnknown = "image/unknown"
	MimeJPEG    = "image/jpeg"
	MimePNG     = "image/png"
	MimeGIF     = "image/gif"
	MimeWebP    = "image/webp"
	MimeHEIF    = "image/heif"
	MimeBMP     = "image/bmp"
	MimeTIFF    = "image/tiff"
)

// mimePrefix is assumed to lead every MimeType value.  ExtensionName strips
// it blindly: a decoder reporting a type without the prefix yields a junk
// extension string, not an error.
const mimePrefix = "image/"

// Metadata describes the outcome of one resolution attempt.  It is
// constructed once by a FormatDecoder and never mutated afterwards; pass it
// by value.
//
// The failure detail is deliberately excluded from Equal and from the map
// view: two failed attempts with the same zero dimensions compare equal even
// when they failed for different reasons.
type Metadata struct {
	Width       int
	Height      int
	BitDepth    int
	MimeType    string
	Orientation int

	err error
}

// None is the sentinel result: all numeric fields zero, unknown MIME type,
// no failure detail.  None.IsSuccess() is false.
var None = Metadata{MimeType: MimeUnknown}

// NewMetadata builds a successful result.
func NewMetadata(width, height, bitDepth int, mimeType string, orientation int) Metadata {
	return Metadata{
		Width:       width,
		Height:      height,
		BitDepth:    bitDepth,
		MimeType:    mimeType,
		Orientation: orientation,
	}
}

// Failure builds a failed result for the given format carrying err as the
// failure detail.
func Failure(mimeType string, err error) Metadata {
	return Metadata{MimeType: mimeType, err: err}
}

// WithFailure returns a copy of m carrying err as the failure detail.
func (m Metadata) WithFailure(err error) Metadata {
	m.err = err
	return m
}

// IsSuccess reports whether the attempt produced usable dimensions.
func (m Metadata) IsSuccess() bool {
	return m.Width > 0 && m.Height > 0 && m.err == nil
}

// FailureDetail returns the failure carried by a failed attempt, or nil.
func (m Metadata) FailureDetail() error { return m.err }

// ExtensionName derives the bare format token from the MIME type, e.g.
// "image/png" -> "png".
func (m Metadata) ExtensionName() string {
	return strings.TrimPrefix(m.MimeType, mimePrefix)
}

// Equal compares the identifying fields only; the failure detail does not
// participate.
func (m Metadata) Equal(other Metadata) bool {
	return m.Width == other.Width &&
		m.Height == other.Height &&
		m.BitDepth == other.BitDepth &&
		m.MimeType == other.MimeType &&
		m.Orientation == other.Orientation
}

// ToMap returns a structural view of m for serialization.  The failure
// detail is excluded.
func (m Metadata) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"width":       m.Width,
		"height":      m.Height,
		"bitDepth":    m.BitDepth,
		"mimeType":    m.MimeType,
		"orientation": m.Orientation,
	}
}

// FromMap reconstructs a Metadata from a structural view produced by ToMap.
// Missing or mistyped keys fall back to the zero value, so FromMap(nil)
// yields a result equal to None apart from the MIME type.
func FromMap(view map[string]interface{}) Metadata {
	m := Metadata{MimeType: MimeUnknown}
	if s, ok := view["mimeType"].(string); ok && s != "" {
		m.MimeType = s
	}
	m.Width = mapInt(view, "width")
	m.Height = mapInt(view, "height")
	m.BitDepth = mapInt(view, "bitDepth")
	m.Orientation = mapInt(view, "orientation")
	return m
}

// mapInt tolerates the numeric types a JSON round trip can produce.
func mapInt(view map[string]interface{}, key string) int {
	switch v := view[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
