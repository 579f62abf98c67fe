package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"

	"github.com/marcus/scenevoice/internal/describe"
)

// PollySpeech synthesizes narration audio with Amazon Polly. Output is
// always mp3; the resolver's quality tier maps onto the neural and
// standard Polly engines.
type PollySpeech struct {
	client *polly.Client
}

// NewPollySpeech creates a Polly-backed speech collaborator.
func NewPollySpeech(awsCfg aws.Config) *PollySpeech {
	return &PollySpeech{client: polly.NewFromConfig(awsCfg)}
}

// Synthesize converts text to mp3 audio.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - text: description text to speak.
//   - voiceID: Polly voice identity, already catalog-validated.
//   - languageCode: Polly language code (e.g. en-US, cmn-CN).
//   - quality: engine tier to use for this attempt.
// Returns:
//   - []byte: mp3 audio stream.
//   - error: non-nil if synthesis fails for this tier.
func (p *PollySpeech) Synthesize(ctx context.Context, text, voiceID, languageCode string, quality describe.Quality) ([]byte, error) {
	engine := types.EngineNeural
	if quality == describe.QualityStandard {
		engine = types.EngineStandard
	}

	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
		LanguageCode: types.LanguageCode(languageCode),
		OutputFormat: types.OutputFormatMp3,
		Engine:       engine,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech with %s engine: %w", engine, err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	return audio, nil
}
