package models

import "github.com/rghoshroy/gent-disagreement-go/internal/textproc"

// SegmentType marks how a processed segment was produced.
type SegmentType string

const (
	TypeShort  SegmentType = "short"
	TypeMedium SegmentType = "medium"
	TypeChunk  SegmentType = "chunk"
)

// Segment is a maximal run of consecutive same-speaker paragraphs from a
// formatted transcript. This is the shape of the exported artifact file.
type Segment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// ProcessedSegment is an embedding-ready unit: a cleaned segment, or one
// chunk of a long segment. Chunk fields are only set when Type is TypeChunk.
type ProcessedSegment struct {
	Speaker        string            `json:"speaker"`
	Text           string            `json:"text"`
	Type           SegmentType       `json:"type"`
	WordCount      int               `json:"word_count"`
	LengthCategory textproc.Category `json:"length_category"`
	ChunkIndex     int               `json:"chunk_index,omitempty"`
	TotalChunks    int               `json:"total_chunks,omitempty"`
	OriginalLength int               `json:"original_length,omitempty"`
}
