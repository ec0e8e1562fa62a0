package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rghoshroy/gent-disagreement-go/internal/metrics"
)

const (
	// EmbeddingModel is the OpenAI model used for all vectors. The stored
	// schema is tied to its dimensionality; changing it requires a reseed.
	EmbeddingModel = "text-embedding-3-small"

	// EmbeddingDimension is the vector width produced by EmbeddingModel.
	EmbeddingDimension = 1536
)

// Embedder turns segment text into fixed-width vectors via the OpenAI
// embeddings API.
type Embedder struct {
	llm     *openai.LLM
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewEmbedder(apiKey string, collector *metrics.Collector, logger *slog.Logger) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}

	return &Embedder{llm: llm, metrics: collector, logger: logger}, nil
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in one API call, preserving input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	start := time.Now()
	vectors, err := e.llm.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if e.metrics != nil {
		e.metrics.Record(metrics.OpEmbedding, time.Since(start))
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(vectors))
	}
	for i, v := range vectors {
		if len(v) != EmbeddingDimension {
			return nil, fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(v), EmbeddingDimension)
		}
	}

	e.logger.Debug("embedded texts", "count", len(texts), "duration", time.Since(start))
	return vectors, nil
}
