package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0, 0}, nil
}

type fakeStore struct {
	results       []models.SearchResult
	gotLimit      int
	gotThreshold  float64
	thresholdUsed bool
}

func (f *fakeStore) SearchSimilar(_ context.Context, _ []float32, limit int) ([]models.SearchResult, error) {
	f.gotLimit = limit
	return f.results, nil
}

func (f *fakeStore) SearchSimilarAboveThreshold(_ context.Context, _ []float32, limit int, threshold float64) ([]models.SearchResult, error) {
	f.gotLimit = limit
	f.gotThreshold = threshold
	f.thresholdUsed = true
	return f.results, nil
}

type fakeGenerator struct {
	prompt string
	answer string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

var sampleResults = []models.SearchResult{
	{Speaker: "Ricky Ghoshroy", Text: "Tariffs are a tax on consumers.", Similarity: 0.82},
	{Speaker: "Brendan Kelly", Text: "The trade deficit framing misses the point.", Similarity: 0.74},
}

func TestSearch_DefaultLimit(t *testing.T) {
	store := &fakeStore{results: sampleResults}
	svc := NewService(&fakeEmbedder{}, store, &fakeGenerator{}, nil)

	results, err := svc.Search(context.Background(), "what about tariffs?", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if store.gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want default %d", store.gotLimit, DefaultLimit)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestSearch_EmbedError(t *testing.T) {
	svc := NewService(&fakeEmbedder{err: errors.New("boom")}, &fakeStore{}, &fakeGenerator{}, nil)
	if _, err := svc.Search(context.Background(), "q", 3); err == nil {
		t.Error("expected embed error to propagate")
	}
}

func TestAnswer_GroundsPromptInResults(t *testing.T) {
	store := &fakeStore{results: sampleResults}
	gen := &fakeGenerator{answer: "They disagreed about tariffs."}
	svc := NewService(&fakeEmbedder{}, store, gen, nil)

	answer, sources, err := svc.Answer(context.Background(), "What do the hosts think about tariffs?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "They disagreed about tariffs." {
		t.Errorf("answer = %q", answer)
	}
	if len(sources) != 2 {
		t.Errorf("got %d sources, want 2", len(sources))
	}
	if store.thresholdUsed {
		t.Error("answer retrieval must not apply a similarity threshold")
	}
	if store.gotLimit != DefaultLimit {
		t.Errorf("limit = %d, want default %d", store.gotLimit, DefaultLimit)
	}

	for _, want := range []string{
		"Ricky Ghoshroy: Tariffs are a tax on consumers.",
		"Brendan Kelly: The trade deficit framing misses the point.",
		"What do the hosts think about tariffs?",
	} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAnswer_EmptyRetrievalStillGenerates(t *testing.T) {
	gen := &fakeGenerator{answer: "The transcripts do not cover that."}
	svc := NewService(&fakeEmbedder{}, &fakeStore{}, gen, nil)

	answer, sources, err := svc.Answer(context.Background(), "completely unrelated question")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if gen.prompt == "" {
		t.Fatal("generator not called on empty retrieval")
	}
	if !strings.Contains(gen.prompt, "completely unrelated question") {
		t.Error("prompt missing the question")
	}
	// The model's output comes back unmodified, no synthesized fallback.
	if answer != "The transcripts do not cover that." {
		t.Errorf("answer = %q", answer)
	}
	if len(sources) != 0 {
		t.Errorf("got %d sources, want 0", len(sources))
	}
}

func TestAnswer_GeneratorError(t *testing.T) {
	svc := NewService(&fakeEmbedder{}, &fakeStore{results: sampleResults}, &fakeGenerator{err: errors.New("rate limited")}, nil)
	if _, _, err := svc.Answer(context.Background(), "q"); err == nil {
		t.Error("expected generator error to propagate")
	}
}

func TestFormatResults(t *testing.T) {
	out := FormatResults(sampleResults)
	if !strings.Contains(out, "1. [0.820] Ricky Ghoshroy:") {
		t.Errorf("unexpected formatting:\n%s", out)
	}
	if !strings.Contains(out, "2. [0.740] Brendan Kelly:") {
		t.Errorf("unexpected formatting:\n%s", out)
	}
}
