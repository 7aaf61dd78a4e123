// Package decoders provides the built-in FormatDecoder implementations.
// Each decoder reads only the header bytes it needs; none of them touch
// pixel data.
package decoders

import (
	"context"

	"github.com/lwj1994/imagemeta/core"
)

// Leading-byte signatures of the built-in formats.  '?' matches any byte.
const (
	magicJPEG = "\xff\xd8\xff"
	magicPNG  = "\x89PNG\r\n\x1a\n"
	magicGIF  = "GIF8?a"
	magicWebP = "RIFF????WEBP"
	magicBMP  = "BM"
)

// matchMagic reports whether data begins with magic; '?' matches any byte.
func matchMagic(data []byte, magic string) bool {
	if len(data) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && data[i] != magic[i] {
			return false
		}
	}
	return true
}

// sniff reads the first n bytes of src for a validity probe.  Any read
// failure yields nil, which no magic string matches.
func sniff(ctx context.Context, src core.ByteSource, n int) []byte {
	b, err := src.ReadRange(ctx, 0, int64(n))
	if err != nil {
		return nil
	}
	return b
}

func u16be(b []byte) int { return int(b[0])<<8 | int(b[1]) }
func u16le(b []byte) int { return int(b[0]) | int(b[1])<<8 }
func u24le(b []byte) int { return int(b[0]) | int(b[1])<<8 | int(b[2])<<16 }
func u32be(b []byte) int {
	return int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
}
func u32le(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16 | int(b[3])<<24
}
