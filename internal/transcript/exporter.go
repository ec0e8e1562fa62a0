package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

// Exporter writes formatted segments to the configured output directory.
// The exported file is the hand-off between the formatting and embedding
// stages and must survive a process restart.
type Exporter struct {
	outputDir string
}

func NewExporter(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create formatted output dir: %w", err)
	}
	return &Exporter{outputDir: outputDir}, nil
}

// ExportSegments writes segments as a JSON array to <stem>.json and returns
// the file path.
func (e *Exporter) ExportSegments(segments []models.Segment, stem string) (string, error) {
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode segments: %w", err)
	}
	path := filepath.Join(e.outputDir, stem+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write formatted segments: %w", err)
	}
	return path, nil
}

// LoadSegments reads a previously exported segments file.
func LoadSegments(path string) ([]models.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formatted segments: %w", err)
	}
	var segments []models.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("decode formatted segments %s: %w", path, err)
	}
	return segments, nil
}

// Stem returns the base name of a path without its extension, used to name
// artifacts after their source file.
func Stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
