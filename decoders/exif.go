package decoders

import "fmt"

// TIFF/EXIF IFD tags and field types used by the JPEG and TIFF decoders.
const (
	tagImageWidth    = 0x0100
	tagImageLength   = 0x0101
	tagBitsPerSample = 0x0102
	tagOrientation   = 0x0112

	typeShort = 3
	typeLong  = 4
)

// ifdReader reads integer fields from a TIFF structure honoring its
// byte-order mark.  Out-of-bounds reads yield zero rather than a fault; the
// callers treat missing tags as absent values.
type ifdReader struct {
	data   []byte
	little bool
}

// newIFDReader validates the TIFF header of data and returns a reader plus
// the offset of the first IFD.
func newIFDReader(data []byte) (*ifdReader, int, error) {
	if len(data) < 8 {
		return nil, 0, fmt.Errorf("tiff: header too short (%d bytes)", len(data))
	}
	r := &ifdReader{data: data}
	switch {
	case data[0] == 'I' && data[1] == 'I':
		r.little = true
	case data[0] == 'M' && data[1] == 'M':
		r.little = false
	default:
		return nil, 0, fmt.Errorf("tiff: invalid byte-order marker %q", data[:2])
	}
	if r.u16(2) != 42 {
		return nil, 0, fmt.Errorf("tiff: bad magic %d", r.u16(2))
	}
	return r, int(r.u32(4)), nil
}

func (r *ifdReader) u16(off int) int {
	if off < 0 || off+1 >= len(r.data) {
		return 0
	}
	if r.little {
		return int(r.data[off]) | int(r.data[off+1])<<8
	}
	return int(r.data[off])<<8 | int(r.data[off+1])
}

func (r *ifdReader) u32(off int) uint32 {
	if off < 0 || off+3 >= len(r.data) {
		return 0
	}
	if r.little {
		return uint32(r.data[off]) | uint32(r.data[off+1])<<8 |
			uint32(r.data[off+2])<<16 | uint32(r.data[off+3])<<24
	}
	return uint32(r.data[off])<<24 | uint32(r.data[off+1])<<16 |
		uint32(r.data[off+2])<<8 | uint32(r.data[off+3])
}

// scanIFD visits every entry of the IFD at off and reports tag values
// through visit.  The value passed is the inline SHORT/LONG payload; for
// multi-count fields the first element behind the offset pointer is used.
func (r *ifdReader) scanIFD(off int, visit func(tag, value int)) {
	count := r.u16(off)
	for i := 0; i < count; i++ {
		entry := off + 2 + 12*i
		tag := r.u16(entry)
		fieldType := r.u16(entry + 2)
		n := int(r.u32(entry + 4))

		var value int
		switch {
		case fieldType == typeShort && n == 1:
			value = r.u16(entry + 8)
		case fieldType == typeLong && n == 1:
			value = int(r.u32(entry + 8))
		case fieldType == typeShort && n > 1:
			// Payload does not fit inline; the slot holds an offset.
			value = r.u16(int(r.u32(entry + 8)))
		default:
			continue
		}
		visit(tag, value)
	}
}

// exifOrientation extracts the orientation code (1-8) from an EXIF TIFF
// blob, e.g. the payload of a JPEG APP1 segment after the "Exif\0\0" prefix.
func exifOrientation(data []byte) (int, bool) {
	r, ifd, err := newIFDReader(data)
	if err != nil {
		return 0, false
	}
	orientation := 0
	r.scanIFD(ifd, func(tag, value int) {
		if tag == tagOrientation && value >= 1 && value <= 8 {
			orientation = value
		}
	})
	return orientation, orientation != 0
}
