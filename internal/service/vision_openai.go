package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/marcus/scenevoice/internal/imaging"
)

// OpenAIVision describes images through any OpenAI-compatible
// chat-completions endpoint (hosted gateways, vLLM, Ollama).
type OpenAIVision struct {
	client    *resty.Client
	model     string
	endpoint  string
	maxTokens int
}

// NewOpenAIVision creates an OpenAI-compatible vision collaborator.
func NewOpenAIVision(cfg *VisionConfig) *OpenAIVision {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OpenAIVision{
		client:    client,
		model:     cfg.Model,
		endpoint:  baseURL + "/chat/completions",
		maxTokens: maxTokens,
	}
}

// OpenAI-compatible chat-completion request/response structures.
type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string        `json:"role"`
	Content []interface{} `json:"content"`
}

type openAITextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openAIImageContent struct {
	Type     string         `json:"type"`
	ImageURL openAIImageURL `json:"image_url"`
}

type openAIImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Describe generates a description for an image.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - image: raw image bytes, already normalized.
//   - format: container format of image.
//   - prompt: language-specific description prompt.
// Returns:
//   - string: generated description text.
//   - error: non-nil if the API request fails.
func (s *OpenAIVision) Describe(ctx context.Context, image []byte, format imaging.Format, prompt string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", format.MIMEType(), base64.StdEncoding.EncodeToString(image))

	req := openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{
				Role: "user",
				Content: []interface{}{
					openAITextContent{Type: "text", Text: prompt},
					openAIImageContent{
						Type:     "image_url",
						ImageURL: openAIImageURL{URL: dataURL, Detail: "auto"},
					},
				},
			},
		},
		MaxTokens: s.maxTokens,
	}

	var resp openAIResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call vision API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("vision API returned HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("vision API returned HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}
	if resp.Error != nil {
		return "", fmt.Errorf("vision API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in vision API response (status %d)", httpResp.StatusCode())
	}
	return resp.Choices[0].Message.Content, nil
}
