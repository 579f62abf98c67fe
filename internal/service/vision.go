// Package service implements the inference collaborators behind the
// resolver interfaces: vision-language models for image description and
// a speech engine for narration.
package service

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/marcus/scenevoice/internal/describe"
)

// VisionConfig holds configuration for the vision model provider.
type VisionConfig struct {
	Provider  string // bedrock, openai
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// NewVisionModel creates the vision collaborator selected by
// cfg.Provider.
// Parameters:
//   - awsCfg: shared AWS configuration, used by the bedrock provider.
//   - cfg: provider selection and model parameters.
// Returns:
//   - describe.VisionModel: initialized collaborator.
//   - error: non-nil for an unknown provider.
func NewVisionModel(awsCfg aws.Config, cfg *VisionConfig) (describe.VisionModel, error) {
	switch cfg.Provider {
	case "", "bedrock":
		return NewBedrockVision(awsCfg, cfg), nil
	case "openai":
		return NewOpenAIVision(cfg), nil
	default:
		return nil, fmt.Errorf("unknown vision provider: %q", cfg.Provider)
	}
}
