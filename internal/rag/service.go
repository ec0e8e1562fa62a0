// Package rag answers questions over stored transcript segments by
// retrieving the most similar segments and prompting a chat model with them.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

const (
	// DefaultLimit is how many segments are retrieved per question.
	DefaultLimit = 5

	// DefaultThreshold is a reasonable minimum similarity for callers of
	// the threshold-restricted search.
	DefaultThreshold = 0.5
)

// Embedder turns a question into a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store performs similarity search over stored segments.
type Store interface {
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error)
	SearchSimilarAboveThreshold(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error)
}

// Generator produces an answer from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service ties retrieval and generation together.
type Service struct {
	embedder  Embedder
	store     Store
	generator Generator
	logger    *slog.Logger
}

func NewService(embedder Embedder, store Store, generator Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{embedder: embedder, store: store, generator: generator, logger: logger}
}

// Search returns the limit segments most similar to the question.
func (s *Service) Search(ctx context.Context, question string, limit int) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return s.store.SearchSimilar(ctx, embedding, limit)
}

// SearchAboveThreshold is Search restricted to hits at or above the
// similarity threshold.
func (s *Service) SearchAboveThreshold(ctx context.Context, question string, limit int, threshold float64) ([]models.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return s.store.SearchSimilarAboveThreshold(ctx, embedding, limit, threshold)
}

// Answer retrieves the most similar segments and asks the chat model for an
// answer grounded in them. The model's output is returned as-is; the
// retrieved segments come back alongside it so callers can show sources.
func (s *Service) Answer(ctx context.Context, question string) (string, []models.SearchResult, error) {
	results, err := s.Search(ctx, question, DefaultLimit)
	if err != nil {
		return "", nil, err
	}
	s.logger.Debug("retrieved context for question", "hits", len(results))

	answer, err := s.generator.Generate(ctx, buildPrompt(question, results))
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}
	return answer, results, nil
}

// FormatResults renders search hits for display.
func FormatResults(results []models.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. [%.3f] %s: %s\n", i+1, r.Similarity, r.Speaker, r.Text)
	}
	return b.String()
}

func buildPrompt(question string, results []models.SearchResult) string {
	var excerpts strings.Builder
	for _, r := range results {
		fmt.Fprintf(&excerpts, "%s: %s\n\n", r.Speaker, r.Text)
	}

	return fmt.Sprintf(`You are a podcast analysis assistant for "A Gentleman's Disagreement", a podcast hosted by Ricky Ghoshroy and Brendan Kelly.

Based on the following excerpts from podcast transcripts, answer the question below. Quote or paraphrase the hosts where it helps, and attribute views to the correct speaker. If the excerpts do not contain enough information to answer, say so.

Excerpts:
%s
Question: %s

Answer:`, excerpts.String(), question)
}
