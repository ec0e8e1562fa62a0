package textproc

import (
	"fmt"
	"strings"
)

// Default chunking parameters, sized for the embedding provider's input
// window.
const (
	DefaultChunkSize = 512
	DefaultOverlap   = 50
)

// Chunker splits long text into overlapping fixed-size word windows.
// Adjacent windows share Overlap words so context survives chunk seams.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker validates the window geometry. An overlap that reaches the
// chunk size would stall the window, so it is rejected rather than clamped.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// DefaultChunker returns a chunker with the default 512/50 window.
func DefaultChunker() *Chunker {
	c, err := NewChunker(DefaultChunkSize, DefaultOverlap)
	if err != nil {
		panic(err) // defaults are statically valid
	}
	return c
}

// Chunk splits text into overlapping word windows. Text at or below the
// chunk size is returned unchanged as a single chunk.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) <= c.chunkSize {
		return []string{text}
	}

	step := c.chunkSize - c.overlap
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
