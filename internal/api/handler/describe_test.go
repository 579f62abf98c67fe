package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/marcus/scenevoice/internal/describe"
	"github.com/marcus/scenevoice/internal/imaging"
)

type stubVision struct {
	text string
	err  error
}

func (s *stubVision) Describe(context.Context, []byte, imaging.Format, string) (string, error) {
	return s.text, s.err
}

type stubSpeech struct {
	audio []byte
	err   error
}

func (s *stubSpeech) Synthesize(context.Context, string, string, string, describe.Quality) ([]byte, error) {
	return s.audio, s.err
}

func testRouter(t *testing.T, vision describe.VisionModel, speech describe.SpeechEngine) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	resolver := describe.NewResolver(vision, speech, nil)
	h := NewDescribeHandler(resolver, nil, nil)

	r := gin.New()
	r.POST("/describe/text", h.Text)
	r.POST("/describe/audio", h.Audio)
	return r
}

func testImagePayload(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTextEndpointReturnsDescription(t *testing.T) {
	r := testRouter(t, &stubVision{text: "a red square"}, &stubSpeech{})

	w := postJSON(t, r, "/describe/text", gin.H{"image": testImagePayload(t), "language": "es"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["description"] != "a red square" {
		t.Errorf("description %q, want 'a red square'", resp["description"])
	}
	if resp["format"] != "text" {
		t.Errorf("format %q, want text", resp["format"])
	}
	if resp["language"] != "es" {
		t.Errorf("language %q, want es", resp["language"])
	}
	if _, hasAudio := resp["audio"]; hasAudio {
		t.Error("text path must not carry an audio field")
	}
}

func TestTextEndpointRejectsMissingImage(t *testing.T) {
	r := testRouter(t, &stubVision{text: "unused"}, &stubSpeech{})

	w := postJSON(t, r, "/describe/text", gin.H{"language": "en"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error envelope missing error message")
	}
}

func TestTextEndpointRejectsUnsupportedLanguage(t *testing.T) {
	r := testRouter(t, &stubVision{text: "unused"}, &stubSpeech{})

	w := postJSON(t, r, "/describe/text", gin.H{"image": testImagePayload(t), "language": "xx"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestTextEndpointMapsInferenceFailureTo500(t *testing.T) {
	r := testRouter(t, &stubVision{err: errors.New("quota exhausted")}, &stubSpeech{})

	w := postJSON(t, r, "/describe/text", gin.H{"image": testImagePayload(t)})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
}

func TestAudioEndpointReturnsNarration(t *testing.T) {
	audio := []byte("fake-mp3-stream")
	r := testRouter(t, &stubVision{text: "a quiet street"}, &stubSpeech{audio: audio})

	w := postJSON(t, r, "/describe/audio", gin.H{"image": testImagePayload(t), "language": "ja"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["format"] != "audio" {
		t.Errorf("format %q, want audio", resp["format"])
	}
	if resp["voice"] != "Mizuki" {
		t.Errorf("voice %q, want Mizuki", resp["voice"])
	}

	encoded, ok := resp["audio"].(string)
	if !ok || encoded == "" {
		t.Fatal("audio field missing or not a string")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("audio is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, audio) {
		t.Error("audio payload does not round-trip")
	}
}

func TestAudioEndpointRejectsForeignVoice(t *testing.T) {
	r := testRouter(t, &stubVision{text: "unused"}, &stubSpeech{audio: []byte("x")})

	w := postJSON(t, r, "/describe/audio", gin.H{
		"image":    testImagePayload(t),
		"language": "es",
		"voice":    "Joanna",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestAudioEndpointMapsSynthesisFailureTo500(t *testing.T) {
	r := testRouter(t, &stubVision{text: "a quiet street"}, &stubSpeech{err: errors.New("engine offline")})

	w := postJSON(t, r, "/describe/audio", gin.H{"image": testImagePayload(t)})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}

	// Both tiers failed: the response must be a pure error envelope,
	// never a description without audio.
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if _, hasDescription := resp["description"]; hasDescription {
		t.Error("failed narration must not leak the description")
	}
}
