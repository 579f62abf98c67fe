package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/marcus/scenevoice/internal/imaging"
)

// defaultBedrockModel is a small multimodal model with good
// latency/cost for single-image description.
const defaultBedrockModel = "amazon.nova-lite-v1:0"

// defaultMaxTokens caps the description length.
const defaultMaxTokens = 300

// BedrockVision describes images through the AWS Bedrock runtime using
// the Nova message schema.
type BedrockVision struct {
	client    *bedrockruntime.Client
	modelID   string
	maxTokens int
}

// NewBedrockVision creates a Bedrock-backed vision collaborator.
func NewBedrockVision(awsCfg aws.Config, cfg *VisionConfig) *BedrockVision {
	modelID := defaultBedrockModel
	maxTokens := defaultMaxTokens
	if cfg != nil {
		if cfg.Model != "" {
			modelID = cfg.Model
		}
		if cfg.MaxTokens > 0 {
			maxTokens = cfg.MaxTokens
		}
	}
	return &BedrockVision{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   modelID,
		maxTokens: maxTokens,
	}
}

// Nova invoke-model request/response structures.
type novaRequest struct {
	Messages        []novaMessage       `json:"messages"`
	InferenceConfig novaInferenceConfig `json:"inferenceConfig"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

// novaContent is either an image block or a text block.
type novaContent struct {
	Image *novaImage `json:"image,omitempty"`
	Text  string     `json:"text,omitempty"`
}

type novaImage struct {
	Format string          `json:"format"`
	Source novaImageSource `json:"source"`
}

type novaImageSource struct {
	Bytes string `json:"bytes"`
}

type novaInferenceConfig struct {
	MaxTokens int `json:"maxTokens"`
}

type novaResponse struct {
	Output struct {
		Message struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// Describe sends the image and prompt to the model and returns its
// free-text description.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - image: raw image bytes, already normalized.
//   - format: container format of image.
//   - prompt: language-specific description prompt.
// Returns:
//   - string: generated description text.
//   - error: non-nil if the invocation fails or yields no content.
func (b *BedrockVision) Describe(ctx context.Context, image []byte, format imaging.Format, prompt string) (string, error) {
	payload := novaRequest{
		Messages: []novaMessage{
			{
				Role: "user",
				Content: []novaContent{
					{
						Image: &novaImage{
							Format: string(format),
							Source: novaImageSource{
								Bytes: base64.StdEncoding.EncodeToString(image),
							},
						},
					},
					{Text: prompt},
				},
			},
		},
		InferenceConfig: novaInferenceConfig{MaxTokens: b.maxTokens},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke model %s: %w", b.modelID, err)
	}

	var resp novaResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(resp.Output.Message.Content) == 0 {
		return "", fmt.Errorf("model %s returned no content", b.modelID)
	}
	return resp.Output.Message.Content[0].Text, nil
}
