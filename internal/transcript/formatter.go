// Package transcript turns raw diarized transcription responses into
// speaker-attributed, embedding-ready segments and manages the exported
// artifact files that hand work between pipeline stages.
package transcript

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/rghoshroy/gent-disagreement-go/internal/deepgram"
	"github.com/rghoshroy/gent-disagreement-go/internal/models"
	"github.com/rghoshroy/gent-disagreement-go/internal/textproc"
)

// Formatter walks the provider's paragraph tree and coalesces consecutive
// same-speaker paragraphs into segments.
type Formatter struct {
	logger *slog.Logger
}

func NewFormatter(logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{logger: logger}
}

// FormatFile reads a saved raw transcript and formats it.
func (f *Formatter) FormatFile(path string, labelToName map[string]string) ([]models.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw transcript: %w", err)
	}
	var resp deepgram.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode raw transcript %s: %w", path, err)
	}
	return f.Format(resp.Paragraphs(), labelToName), nil
}

// Format resolves each paragraph's diarization label through labelToName and
// merges maximal runs of consecutive same-speaker paragraphs into single
// segments, sentences joined by one space. Paragraphs whose label has no
// mapping are dropped with a warning. The output preserves input order,
// contains no empty segments and never two adjacent segments with the same
// speaker.
func (f *Formatter) Format(paragraphs []deepgram.Paragraph, labelToName map[string]string) []models.Segment {
	var segments []models.Segment
	var current *models.Segment
	dropped := 0

	flush := func() {
		if current == nil {
			return
		}
		text := textproc.Normalize(current.Text)
		if text != "" {
			// An empty-text run between two same-speaker runs must not
			// split them into adjacent duplicates.
			if n := len(segments); n > 0 && segments[n-1].Speaker == current.Speaker {
				segments[n-1].Text = textproc.Normalize(segments[n-1].Text + " " + text)
			} else {
				segments = append(segments, models.Segment{Speaker: current.Speaker, Text: text})
			}
		}
		current = nil
	}

	for _, p := range paragraphs {
		label := strconv.Itoa(p.Speaker)
		name, ok := labelToName[label]
		if !ok {
			dropped++
			f.logger.Warn("unknown speaker label, dropping paragraph", "label", label)
			continue
		}

		if current == nil || current.Speaker != name {
			flush()
			current = &models.Segment{Speaker: name}
		}
		for _, s := range p.Sentences {
			if current.Text == "" {
				current.Text = s.Text
			} else {
				current.Text += " " + s.Text
			}
		}
	}
	flush()

	if dropped > 0 {
		f.logger.Warn("paragraphs dropped for unresolvable speaker labels", "count", dropped)
	}
	return segments
}
