package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// GenerationModel is the chat model used to answer questions over
// retrieved transcript context.
const GenerationModel = "gpt-4o-mini"

// Model wraps the OpenAI chat completion API for answer generation.
type Model struct {
	llm    *openai.LLM
	logger *slog.Logger
}

func NewModel(apiKey string, logger *slog.Logger) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(GenerationModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &Model{llm: llm, logger: logger}, nil
}

// Generate produces a completion for the given prompt.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	answer, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	m.logger.Debug("generated answer", "model", GenerationModel, "duration", time.Since(start))
	return answer, nil
}
