package models

// Episode is one podcast episode tracked by the pipeline.
type Episode struct {
	EpisodeNumber int    `json:"episode_number"`
	Title         string `json:"title"`
	FileName      string `json:"file_name"`
	DatePublished string `json:"date_published,omitempty"`
	IsProcessed   bool   `json:"is_processed"`
}

// WorkRow is one row of the unprocessed-work query: the datastore returns
// one row per (episode, speaker) pair, ordered by episode then speaker
// number.
type WorkRow struct {
	EpisodeNumber int
	Title         string
	FileName      string
	IsProcessed   bool
	SpeakerNumber string
	SpeakerName   string
	SpeakerID     int
}

// EpisodeWork is the per-episode payload the orchestrator builds by grouping
// work rows. LabelToName resolves diarization labels ("0", "1") to display
// names; NameToID resolves display names to speaker row ids for persistence.
type EpisodeWork struct {
	EpisodeNumber int
	Title         string
	FileName      string
	IsProcessed   bool
	LabelToName   map[string]string
	NameToID      map[string]int
}

// EmbeddingRecord is one persisted transcript segment with its vector.
type EmbeddingRecord struct {
	SpeakerID int
	Text      string
	Embedding []float32
}

// SearchResult is one similarity-search hit.
type SearchResult struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}
