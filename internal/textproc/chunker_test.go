package textproc

import (
	"strings"
	"testing"
)

// wordsOfLength builds a space-separated text of n distinct words.
func wordsOfLength(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "w" + strings.Repeat("x", i%5)
	}
	return strings.Join(words, " ")
}

func TestNewChunker_RejectsDegenerateOverlap(t *testing.T) {
	if _, err := NewChunker(512, 512); err == nil {
		t.Error("NewChunker(512, 512) should reject overlap == chunk size")
	}
	if _, err := NewChunker(512, 600); err == nil {
		t.Error("NewChunker(512, 600) should reject overlap > chunk size")
	}
	if _, err := NewChunker(0, 0); err == nil {
		t.Error("NewChunker(0, 0) should reject zero chunk size")
	}
	if _, err := NewChunker(512, -1); err == nil {
		t.Error("NewChunker(512, -1) should reject negative overlap")
	}
}

func TestChunk_PassThrough(t *testing.T) {
	c := DefaultChunker()

	short := "just a few words here"
	chunks := c.Chunk(short)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != short {
		t.Errorf("pass-through chunk = %q, want input unchanged", chunks[0])
	}

	// Exactly at the boundary still passes through.
	exact := wordsOfLength(DefaultChunkSize)
	if got := c.Chunk(exact); len(got) != 1 {
		t.Errorf("512-word text: got %d chunks, want 1", len(got))
	}
}

func TestChunk_SixHundredWords(t *testing.T) {
	c := DefaultChunker()
	chunks := c.Chunk(wordsOfLength(600))

	if len(chunks) != 2 {
		t.Fatalf("600 words: got %d chunks, want 2", len(chunks))
	}
	if n := len(strings.Fields(chunks[0])); n != 512 {
		t.Errorf("first chunk has %d words, want 512", n)
	}
	// Second chunk starts at word 462 (step = 512-50), so 600-462 words.
	if n := len(strings.Fields(chunks[1])); n != 138 {
		t.Errorf("second chunk has %d words, want 138", n)
	}
}

func TestChunk_CoversAllWords(t *testing.T) {
	const total = 1500
	c := DefaultChunker()
	chunks := c.Chunk(wordsOfLength(total))

	step := DefaultChunkSize - DefaultOverlap
	covered := make(map[int]bool, total)
	for i, chunk := range chunks {
		start := i * step
		n := len(strings.Fields(chunk))
		if i < len(chunks)-1 && n != DefaultChunkSize {
			t.Errorf("chunk %d has %d words, want %d", i, n, DefaultChunkSize)
		}
		for w := start; w < start+n; w++ {
			covered[w] = true
		}
	}
	for w := 0; w < total; w++ {
		if !covered[w] {
			t.Fatalf("word index %d not covered by any chunk", w)
		}
	}
}

func TestChunk_OverlapBetweenNeighbors(t *testing.T) {
	c := DefaultChunker()
	chunks := c.Chunk(wordsOfLength(1100))
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	// Last 50 words of chunk 0 are the first 50 words of chunk 1.
	tail := first[len(first)-DefaultOverlap:]
	head := second[:DefaultOverlap]
	for i := range tail {
		if tail[i] != head[i] {
			t.Fatalf("overlap mismatch at word %d: %q vs %q", i, tail[i], head[i])
		}
	}
}
