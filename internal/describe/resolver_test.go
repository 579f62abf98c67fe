package describe

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/marcus/scenevoice/internal/imaging"
)

// spyVision records calls and returns a canned description or error.
type spyVision struct {
	calls      int
	lastImage  []byte
	lastFormat imaging.Format
	lastPrompt string
	text       string
	err        error
}

func (s *spyVision) Describe(_ context.Context, img []byte, format imaging.Format, prompt string) (string, error) {
	s.calls++
	s.lastImage = img
	s.lastFormat = format
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// spySpeech records per-quality attempts and can fail each tier
// independently.
type spySpeech struct {
	attempts     []Quality
	lastVoice    string
	lastLocale   string
	failNeural   bool
	failStandard bool
	audio        []byte
}

func (s *spySpeech) Synthesize(_ context.Context, _ string, voiceID, languageCode string, quality Quality) ([]byte, error) {
	s.attempts = append(s.attempts, quality)
	s.lastVoice = voiceID
	s.lastLocale = languageCode
	if quality == QualityNeural && s.failNeural {
		return nil, errors.New("neural engine unavailable")
	}
	if quality == QualityStandard && s.failStandard {
		return nil, errors.New("standard engine unavailable")
	}
	return s.audio, nil
}

func pngPayload(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestResolver() (*Resolver, *spyVision, *spySpeech) {
	vision := &spyVision{text: "a small test image"}
	speech := &spySpeech{audio: []byte("mp3-bytes")}
	return NewResolver(vision, speech, nil), vision, speech
}

func TestDescribeRejectsMissingImage(t *testing.T) {
	r, vision, _ := newTestResolver()

	_, err := r.Describe(context.Background(), &Request{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "image" {
		t.Errorf("error names field %q, want image", verr.Field)
	}
	if vision.calls != 0 {
		t.Errorf("vision model called %d times before validation, want 0", vision.calls)
	}
}

func TestDescribeRejectsUnsupportedLanguage(t *testing.T) {
	r, vision, speech := newTestResolver()

	req := &Request{Image: pngPayload(t), Language: "xx"}
	if _, err := r.Describe(context.Background(), req); err == nil {
		t.Fatal("expected error for unsupported language")
	} else {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	}

	if _, err := r.Narrate(context.Background(), req); err == nil {
		t.Fatal("expected error for unsupported language on narration path")
	}

	if vision.calls != 0 || len(speech.attempts) != 0 {
		t.Errorf("collaborators invoked despite validation failure: vision=%d speech=%d",
			vision.calls, len(speech.attempts))
	}
}

func TestDescribeRejectsUndecodablePayload(t *testing.T) {
	r, vision, _ := newTestResolver()

	_, err := r.Describe(context.Background(), &Request{Image: "!!not base64!!"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vision.calls != 0 {
		t.Error("vision model should not be called for undecodable payloads")
	}
}

func TestDescribeUsesLanguagePrompt(t *testing.T) {
	tests := []struct {
		language   string
		wantPrompt string
	}{
		{"en", "Please describe what you see in this image in detail."},
		{"EN", "Please describe what you see in this image in detail."},
		{"es", "Por favor describe lo que ves en esta imagen en detalle."},
		{"", "Please describe what you see in this image in detail."},
	}

	for _, tc := range tests {
		r, vision, _ := newTestResolver()
		res, err := r.Describe(context.Background(), &Request{Image: pngPayload(t), Language: tc.language})
		if err != nil {
			t.Fatalf("Describe(language=%q) failed: %v", tc.language, err)
		}
		if vision.lastPrompt != tc.wantPrompt {
			t.Errorf("language %q: prompt %q, want %q", tc.language, vision.lastPrompt, tc.wantPrompt)
		}
		if res.Audio != nil {
			t.Errorf("language %q: text path returned audio", tc.language)
		}
	}
}

func TestDescribeStripsDataURLPrefix(t *testing.T) {
	payload := pngPayload(t)

	r1, v1, _ := newTestResolver()
	if _, err := r1.Describe(context.Background(), &Request{Image: payload}); err != nil {
		t.Fatalf("bare payload failed: %v", err)
	}

	r2, v2, _ := newTestResolver()
	if _, err := r2.Describe(context.Background(), &Request{Image: "data:image/png;base64," + payload}); err != nil {
		t.Fatalf("data-URL payload failed: %v", err)
	}

	if !bytes.Equal(v1.lastImage, v2.lastImage) {
		t.Error("data-URL prefixed payload decoded differently from bare payload")
	}
	if v2.lastFormat != imaging.FormatPNG {
		t.Errorf("detected format %s, want png", v2.lastFormat)
	}
}

func TestNarrateSelectsLanguageDefaultVoice(t *testing.T) {
	r, _, speech := newTestResolver()

	res, err := r.Narrate(context.Background(), &Request{Image: pngPayload(t), Language: "es"})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if res.Voice != "Lucia" {
		t.Errorf("resolved voice %q, want Spanish default Lucia", res.Voice)
	}
	if speech.lastLocale != "es-ES" {
		t.Errorf("speech locale %q, want es-ES", speech.lastLocale)
	}
}

func TestNarrateReplacesGlobalDefaultForOtherLanguages(t *testing.T) {
	r, _, speech := newTestResolver()

	res, err := r.Narrate(context.Background(), &Request{
		Image:    pngPayload(t),
		Language: "ja",
		Voice:    "Joanna",
	})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if res.Voice != "Mizuki" {
		t.Errorf("resolved voice %q, want Japanese default Mizuki", res.Voice)
	}
	if speech.lastVoice != "Mizuki" {
		t.Errorf("synthesis used voice %q, want Mizuki", speech.lastVoice)
	}
}

// Substitution only applies when the caller left the voice at the
// global default. An explicitly wrong voice is rejected, not replaced.
func TestNarrateRejectsVoiceOutsideCatalog(t *testing.T) {
	r, vision, speech := newTestResolver()

	_, err := r.Narrate(context.Background(), &Request{
		Image:    pngPayload(t),
		Language: "es",
		Voice:    "Joanna",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "voice" {
		t.Errorf("error names field %q, want voice", verr.Field)
	}
	if vision.calls != 0 || len(speech.attempts) != 0 {
		t.Error("collaborators should not be invoked for a rejected voice")
	}
}

func TestNarrateKeepsExplicitPermittedVoice(t *testing.T) {
	r, _, _ := newTestResolver()

	res, err := r.Narrate(context.Background(), &Request{
		Image:    pngPayload(t),
		Language: "es",
		Voice:    "Miguel",
	})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if res.Voice != "Miguel" {
		t.Errorf("resolved voice %q, want Miguel", res.Voice)
	}
}

func TestNarrateFallsBackToStandardQuality(t *testing.T) {
	r, _, speech := newTestResolver()
	speech.failNeural = true

	res, err := r.Narrate(context.Background(), &Request{Image: pngPayload(t)})
	if err != nil {
		t.Fatalf("Narrate failed despite working fallback: %v", err)
	}
	if len(res.Audio) == 0 {
		t.Error("fallback synthesis should still populate audio")
	}
	want := []Quality{QualityNeural, QualityStandard}
	if len(speech.attempts) != 2 || speech.attempts[0] != want[0] || speech.attempts[1] != want[1] {
		t.Errorf("synthesis attempts %v, want %v", speech.attempts, want)
	}
}

func TestNarrateFailsWhenBothSynthesisAttemptsFail(t *testing.T) {
	r, _, speech := newTestResolver()
	speech.failNeural = true
	speech.failStandard = true

	res, err := r.Narrate(context.Background(), &Request{Image: pngPayload(t)})
	var ierr *InferenceError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
	if ierr.Stage != StageSpeech {
		t.Errorf("error stage %q, want speech", ierr.Stage)
	}
	if res != nil {
		t.Error("no partial result may be returned when narration fails")
	}
	if len(speech.attempts) != 2 {
		t.Errorf("made %d synthesis attempts, want exactly 2", len(speech.attempts))
	}
}

func TestVisionFailureIsNotRetried(t *testing.T) {
	r, vision, speech := newTestResolver()
	vision.err = errors.New("model quota exceeded")

	_, err := r.Narrate(context.Background(), &Request{Image: pngPayload(t)})
	var ierr *InferenceError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
	if ierr.Stage != StageVision {
		t.Errorf("error stage %q, want vision", ierr.Stage)
	}
	if vision.calls != 1 {
		t.Errorf("vision model called %d times, want exactly 1", vision.calls)
	}
	if len(speech.attempts) != 0 {
		t.Error("speech engine should not run after a vision failure")
	}
}

func TestResultEchoesLanguageAndVoice(t *testing.T) {
	r, _, _ := newTestResolver()

	res, err := r.Narrate(context.Background(), &Request{Image: pngPayload(t), Language: "DE"})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if res.Language != "de" {
		t.Errorf("echoed language %q, want de", res.Language)
	}
	if res.Voice != "Marlene" {
		t.Errorf("echoed voice %q, want Marlene", res.Voice)
	}
	if res.Description != "a small test image" {
		t.Errorf("unexpected description %q", res.Description)
	}
}
