// Package describe implements the request-resolution core of the
// pipeline: it validates and normalizes an incoming description or
// narration request, resolves the language to a prompt, locale, and
// voice, and drives the two inference collaborators in sequence.
//
// The resolver is stateless; a single instance serves overlapping
// requests without synchronization.
package describe

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/marcus/scenevoice/internal/imaging"
	"github.com/marcus/scenevoice/internal/locale"
	"github.com/marcus/scenevoice/internal/logger"
)

// Quality selects the synthesis engine tier. Neural is preferred;
// standard is the fallback when neural fails.
type Quality string

const (
	QualityNeural   Quality = "neural"
	QualityStandard Quality = "standard"
)

// VisionModel is the image-to-text collaborator.
type VisionModel interface {
	// Describe returns a free-text description of the image. The format
	// tag matches the bytes actually passed, post-normalization.
	Describe(ctx context.Context, image []byte, format imaging.Format, prompt string) (string, error)
}

// SpeechEngine is the text-to-speech collaborator.
type SpeechEngine interface {
	// Synthesize converts text to audio with the given voice, speech
	// locale, and quality tier. Each tier may fail independently.
	Synthesize(ctx context.Context, text, voiceID, languageCode string, quality Quality) ([]byte, error)
}

// Request is a description or narration request as consumed by the
// resolver, independent of transport.
type Request struct {
	// Image is the base64-encoded payload, optionally carrying a
	// "data:image/...;base64," prefix.
	Image string `json:"image"`

	// Language is an ISO 639-1 two-letter code; empty means English.
	Language string `json:"language"`

	// Voice is the requested synthesis voice; only meaningful for
	// narration requests.
	Voice string `json:"voice"`
}

// Result is the assembled outcome of a resolved request. Audio is nil
// on the text path.
type Result struct {
	Description string
	Audio       []byte
	Language    string
	Voice       string
}

// Config holds resolver tuning parameters.
type Config struct {
	// MaxDimension caps the longest image side before inference;
	// zero selects imaging.DefaultMaxDimension.
	MaxDimension int
}

// Resolver validates requests and orchestrates the inference calls.
type Resolver struct {
	vision       VisionModel
	speech       SpeechEngine
	maxDimension int
}

// NewResolver creates a resolver around the two collaborators.
// Parameters:
//   - vision: image-to-text collaborator.
//   - speech: text-to-speech collaborator; may be nil if only the text
//     path is served.
//   - cfg: tuning parameters; nil uses defaults.
// Returns:
//   - *Resolver: initialized resolver.
func NewResolver(vision VisionModel, speech SpeechEngine, cfg *Config) *Resolver {
	maxDim := imaging.DefaultMaxDimension
	if cfg != nil && cfg.MaxDimension > 0 {
		maxDim = cfg.MaxDimension
	}
	return &Resolver{
		vision:       vision,
		speech:       speech,
		maxDimension: maxDim,
	}
}

// Describe resolves the text path: validate, normalize, call the vision
// model, and assemble a text-only result.
func (r *Resolver) Describe(ctx context.Context, req *Request) (*Result, error) {
	lang, image, err := r.prepare(req)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithField(ctx, logger.FieldLanguage, lang.Code)

	text, err := r.describeImage(ctx, image, lang)
	if err != nil {
		return nil, err
	}

	return &Result{
		Description: text,
		Language:    lang.Code,
	}, nil
}

// Narrate resolves the audio path: everything Describe does, plus voice
// resolution up front and speech synthesis after the description.
func (r *Resolver) Narrate(ctx context.Context, req *Request) (*Result, error) {
	lang, image, err := r.prepare(req)
	if err != nil {
		return nil, err
	}

	voice, err := resolveVoice(lang, req.Voice)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldLanguage: lang.Code,
		logger.FieldVoice:    voice,
	})

	text, err := r.describeImage(ctx, image, lang)
	if err != nil {
		return nil, err
	}

	audio, err := r.synthesize(ctx, text, voice, lang.SpeechLocale)
	if err != nil {
		// No partial success: the description is discarded when both
		// synthesis attempts fail.
		return nil, err
	}

	return &Result{
		Description: text,
		Audio:       audio,
		Language:    lang.Code,
		Voice:       voice,
	}, nil
}

// prepare runs the shared validation steps: image presence, language
// resolution, base64 decode, and normalization. All failures short-
// circuit before any inference call is made.
func (r *Resolver) prepare(req *Request) (locale.Language, []byte, error) {
	if req == nil || req.Image == "" {
		return locale.Language{}, nil, &ValidationError{
			Field:   "image",
			Message: "No image provided in the request",
		}
	}

	code := req.Language
	if code == "" {
		code = locale.Default
	}
	lang, ok := locale.Resolve(code)
	if !ok {
		return locale.Language{}, nil, &ValidationError{
			Field:   "language",
			Message: fmt.Sprintf("Invalid language code: %s. Use ISO 639-1 two-letter codes (e.g., en, es, ja)", strings.ToLower(code)),
		}
	}

	raw, err := decodeImagePayload(req.Image)
	if err != nil {
		return locale.Language{}, nil, &ValidationError{
			Field:   "image",
			Message: "Invalid image payload: not valid base64 data",
		}
	}

	// Best-effort downscale; failures fall back to the original bytes.
	normalized := imaging.Normalize(raw, r.maxDimension)

	return lang, normalized, nil
}

// describeImage invokes the vision collaborator once. Failures are
// never retried.
func (r *Resolver) describeImage(ctx context.Context, image []byte, lang locale.Language) (string, error) {
	format := imaging.DetectFormat(image)
	text, err := r.vision.Describe(ctx, image, format, lang.Prompt)
	if err != nil {
		return "", &InferenceError{Stage: StageVision, Err: err}
	}
	return text, nil
}

// synthesize attempts neural synthesis, then retries exactly once with
// the standard tier. The fallback's error wins when both fail.
func (r *Resolver) synthesize(ctx context.Context, text, voice, speechLocale string) ([]byte, error) {
	audio, err := r.speech.Synthesize(ctx, text, voice, speechLocale, QualityNeural)
	if err == nil {
		return audio, nil
	}
	logger.CtxWarn(ctx, "Neural synthesis failed, retrying with standard engine: %v", err)

	audio, err = r.speech.Synthesize(ctx, text, voice, speechLocale, QualityStandard)
	if err != nil {
		return nil, &InferenceError{Stage: StageSpeech, Err: err}
	}
	return audio, nil
}

// resolveVoice applies the default-voice substitution and validates the
// effective voice against the language's permitted set. Validation runs
// even on an auto-selected voice, so a corrupt catalog entry surfaces
// here instead of as a bad synthesis call.
func resolveVoice(lang locale.Language, requested string) (string, error) {
	voice := requested
	if voice == "" || (voice == locale.GlobalDefaultVoice && lang.Code != locale.Default) {
		voice = lang.DefaultVoice
	}
	if !lang.PermitsVoice(voice) {
		return "", &ValidationError{
			Field:   "voice",
			Message: fmt.Sprintf("Voice %s is not available for language %s", voice, lang.Code),
		}
	}
	return voice, nil
}

// decodeImagePayload strips an optional data-URL prefix and decodes the
// base64 payload. Everything up to and including the first comma is
// discarded.
func decodeImagePayload(payload string) ([]byte, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
