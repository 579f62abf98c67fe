package imaging

import "bytes"

// Format identifies an image container format as understood by the
// vision model API.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatWEBP Format = "webp"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	gifMagic  = []byte("GIF")
	riffMagic = []byte("RIFF")
	webpTag   = []byte("WEBP")
)

// DetectFormat inspects the leading magic bytes of data and returns the
// matching format. Unrecognized data is reported as JPEG, which is what
// the vision model assumes by default. Callers must run detection on
// the bytes actually sent to the model, since normalization can change
// the container format.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	case bytes.HasPrefix(data, gifMagic):
		return FormatGIF
	case len(data) >= 12 && bytes.HasPrefix(data, riffMagic) && bytes.Contains(data[:12], webpTag):
		return FormatWEBP
	default:
		return FormatJPEG
	}
}

// MIMEType returns the MIME type for the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWEBP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
