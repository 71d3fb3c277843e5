package display

import (
	"image"
	"image/color"
	"strings"

	"github.com/tauraamui/photoframed/internal/xerror"
)

// Encoding selects the wire pixel format the panel firmware
// expects for full frame payloads.
type Encoding int

const (
	RGB565BigEndian Encoding = iota
	RGB565LittleEndian
	BGR
	BGRA
	BGRACompressed
)

func (e Encoding) String() string {
	switch e {
	case RGB565BigEndian:
		return "rgb565be"
	case RGB565LittleEndian:
		return "rgb565le"
	case BGR:
		return "bgr"
	case BGRA:
		return "bgra"
	case BGRACompressed:
		return "bgra-compressed"
	}
	return "unknown"
}

// BytesPerPixel returns the encoded size of a single pixel.
func (e Encoding) BytesPerPixel() int {
	switch e {
	case BGR, BGRACompressed:
		return 3
	case BGRA:
		return 4
	}
	return 2
}

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "rgb565be":
		return RGB565BigEndian, nil
	case "rgb565le", "rgb565":
		return RGB565LittleEndian, nil
	case "bgr":
		return BGR, nil
	case "bgra":
		return BGRA, nil
	case "bgra-compressed":
		return BGRACompressed, nil
	}
	return RGB565LittleEndian, xerror.Errorf("unknown pixel format: %s", s).ToError()
}

// Encode converts the given bitmap into the requested wire
// encoding. The transform is deterministic per pixel and any
// source colour model is converted rather than rejected.
func Encode(img image.Image, e Encoding) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*e.BytesPerPixel())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = appendPixel(out, px, e)
		}
	}

	return out
}

func appendPixel(out []byte, px color.NRGBA, e Encoding) []byte {
	switch e {
	case RGB565BigEndian, RGB565LittleEndian:
		// Quantize by scaling against the channel max, truncating.
		r5 := uint16(px.R) * 31 / 255
		g6 := uint16(px.G) * 63 / 255
		b5 := uint16(px.B) * 31 / 255
		value := r5<<11 | g6<<5 | b5
		if e == RGB565LittleEndian {
			return append(out, byte(value&0xFF), byte(value>>8))
		}
		return append(out, byte(value>>8), byte(value&0xFF))
	case BGR:
		return append(out, px.B, px.G, px.R)
	case BGRA:
		return append(out, px.B, px.G, px.R, px.A)
	case BGRACompressed:
		// Lossy packing the firmware decodes by masking: the top
		// nibble of alpha is folded into the low bits of B and G.
		a := px.A >> 4
		return append(out, px.B&0xFC|a>>2, px.G&0xFC|a&2, px.R)
	}
	return out
}
