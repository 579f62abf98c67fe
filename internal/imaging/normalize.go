// Package imaging bounds inference cost by capping the resolution of
// uploaded images before they reach the vision model.
package imaging

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension is the default cap on the longest image side.
const DefaultMaxDimension = 800

// jpegQuality is used for all JPEG re-encodes.
const jpegQuality = 85

// Normalize downscales data so that its longest side does not exceed
// maxDimension, preserving aspect ratio. Images already within bounds
// are returned unchanged, byte for byte. Normalization is best-effort:
// any decode or encode failure returns the original bytes so that an
// otherwise valid request is never rejected over this optimization.
//
// Downscaled images are re-encoded in their original format when Go can
// encode it; WEBP and unknown formats come back as JPEG.
func Normalize(data []byte, maxDimension int) []byte {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data
	}
	width, height := fitWithin(cfg.Width, cfg.Height, maxDimension)
	if width == cfg.Width && height == cfg.Height {
		return data
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return data
	}
	return buf.Bytes()
}

// fitWithin clamps the longer side to maxDimension and scales the
// shorter side proportionally with integer truncation.
func fitWithin(width, height, maxDimension int) (int, int) {
	if width >= height {
		if width <= maxDimension {
			return width, height
		}
		return maxDimension, height * maxDimension / width
	}
	if height <= maxDimension {
		return width, height
	}
	return width * maxDimension / height, maxDimension
}
