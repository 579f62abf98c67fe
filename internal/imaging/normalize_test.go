package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDimensions(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode normalized image: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestNormalizeLeavesSmallImagesUntouched(t *testing.T) {
	original := encodePNG(t, 640, 480)
	got := Normalize(original, 800)
	if !bytes.Equal(got, original) {
		t.Error("image within bounds should pass through byte-for-byte")
	}
}

func TestNormalizeDownscalesPreservingAspectRatio(t *testing.T) {
	tests := []struct {
		name                 string
		width, height        int
		maxDim               int
		wantWidth, wantHeight int
	}{
		{"landscape", 1600, 1200, 800, 800, 600},
		{"portrait", 1200, 1600, 800, 600, 800},
		{"square", 1000, 1000, 800, 800, 800},
		{"exactly at bound", 800, 600, 800, 800, 600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Normalize(encodePNG(t, tc.width, tc.height), tc.maxDim)
			w, h := decodeDimensions(t, out)
			if w != tc.wantWidth || h != tc.wantHeight {
				t.Errorf("got %dx%d, want %dx%d", w, h, tc.wantWidth, tc.wantHeight)
			}
		})
	}
}

func TestNormalizeKeepsOriginalFormat(t *testing.T) {
	out := Normalize(encodePNG(t, 1600, 1200), 800)
	if f := DetectFormat(out); f != FormatPNG {
		t.Errorf("resized PNG re-encoded as %s, want png", f)
	}

	out = Normalize(encodeJPEG(t, 1600, 1200), 800)
	if f := DetectFormat(out); f != FormatJPEG {
		t.Errorf("resized JPEG re-encoded as %s, want jpeg", f)
	}
}

func TestNormalizePassesThroughUndecodableData(t *testing.T) {
	original := []byte("definitely not an image")
	if got := Normalize(original, 800); !bytes.Equal(got, original) {
		t.Error("undecodable input should be returned unchanged")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, FormatPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, FormatJPEG},
		{"gif", []byte("GIF89a"), FormatGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), FormatWEBP},
		{"unknown defaults to jpeg", []byte("BM\x00\x00"), FormatJPEG},
		{"empty defaults to jpeg", nil, FormatJPEG},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFormat(tc.data); got != tc.want {
				t.Errorf("DetectFormat() = %s, want %s", got, tc.want)
			}
		})
	}
}
