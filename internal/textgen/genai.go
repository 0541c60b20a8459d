package textgen

import (
	"context"
	"fmt"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"google.golang.org/genai"
)

// GenAIBackend generates text with Google's Gemini API.
type GenAIBackend struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGenAIBackend creates a Gemini client from explicit settings.
func NewGenAIBackend(ctx context.Context, cfg Config) (*GenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}

	model := cfg.Model
	if model == "" {
		model = constants.DefaultGeneratorModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = constants.DefaultGeneratorTemperature
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIBackend{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Generate sends prompt as a single user turn.
func (b *GenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := b.client.Models.GenerateContent(ctx,
		b.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(b.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
