package transcript

import (
	"strings"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
	"github.com/rghoshroy/gent-disagreement-go/internal/textproc"
)

// SegmentProcessor cleans formatted segments and buckets them by length:
// short and medium segments are embedded whole, long segments are split into
// overlapping chunks.
type SegmentProcessor struct {
	chunker *textproc.Chunker
}

func NewSegmentProcessor(chunker *textproc.Chunker) *SegmentProcessor {
	if chunker == nil {
		chunker = textproc.DefaultChunker()
	}
	return &SegmentProcessor{chunker: chunker}
}

// Process converts formatted segments into embedding-ready units. Segments
// whose cleaned text is empty contribute nothing downstream and are skipped.
// Input order is preserved; chunks of one source segment are emitted
// consecutively in index order.
func (p *SegmentProcessor) Process(segments []models.Segment) []models.ProcessedSegment {
	var processed []models.ProcessedSegment

	for _, seg := range segments {
		cleaned := textproc.Clean(seg.Text)
		if cleaned == "" {
			continue
		}

		wordCount := len(strings.Fields(cleaned))
		category := textproc.Categorize(wordCount)

		switch category {
		case textproc.CategoryShort, textproc.CategoryMedium:
			processed = append(processed, models.ProcessedSegment{
				Speaker:        seg.Speaker,
				Text:           cleaned,
				Type:           models.SegmentType(category),
				WordCount:      wordCount,
				LengthCategory: category,
			})
		default:
			chunks := p.chunker.Chunk(cleaned)
			for i, chunk := range chunks {
				processed = append(processed, models.ProcessedSegment{
					Speaker:        seg.Speaker,
					Text:           chunk,
					Type:           models.TypeChunk,
					WordCount:      len(strings.Fields(chunk)),
					LengthCategory: category,
					ChunkIndex:     i,
					TotalChunks:    len(chunks),
					OriginalLength: wordCount,
				})
			}
		}
	}
	return processed
}
