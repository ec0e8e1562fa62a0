// Package pipeline drives episodes through transcription, formatting,
// embedding, and storage.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rghoshroy/gent-disagreement-go/internal/metrics"
	"github.com/rghoshroy/gent-disagreement-go/internal/models"
	"github.com/rghoshroy/gent-disagreement-go/internal/transcript"
)

// State is an episode's position in the pipeline.
type State string

const (
	StatePending      State = "pending"
	StateTranscribing State = "transcribing"
	StateFormatting   State = "formatting"
	StateEmbedding    State = "embedding"
	StateStoring      State = "storing"
	StateDone         State = "done"
	StateSkipped      State = "skipped"
	StateFailed       State = "failed"
)

// Transcriber produces a raw transcript artifact for an audio file and
// returns its path.
type Transcriber interface {
	GenerateTranscript(ctx context.Context, fileName string) (string, error)
}

// Embedder turns texts into vectors, preserving order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	RetrieveUnprocessedWork(ctx context.Context) ([]models.WorkRow, error)
	StoreEmbeddings(ctx context.Context, episodeNumber int, records []models.EmbeddingRecord) error
	MarkEpisodeProcessed(ctx context.Context, episodeNumber int) error
}

// Result reports the outcome of one episode.
type Result struct {
	EpisodeNumber int
	State         State
	FailedAt      State
	Err           error
	Stored        int
	Distribution  map[models.SegmentType]int
}

// Orchestrator runs the full pipeline over every unprocessed episode.
// Failures are per-episode: a broken episode is reported and skipped, the
// run continues with the next one.
type Orchestrator struct {
	transcriber Transcriber
	formatter   *transcript.Formatter
	processor   *transcript.SegmentProcessor
	exporter    *transcript.Exporter
	embedder    Embedder
	store       Store
	metrics     *metrics.Collector
	logger      *slog.Logger
}

func NewOrchestrator(transcriber Transcriber, exporter *transcript.Exporter, embedder Embedder, store Store, collector *metrics.Collector, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		transcriber: transcriber,
		formatter:   transcript.NewFormatter(logger),
		processor:   transcript.NewSegmentProcessor(nil),
		exporter:    exporter,
		embedder:    embedder,
		store:       store,
		metrics:     collector,
		logger:      logger,
	}
}

// Run processes every unprocessed episode and returns one result each.
// The only fatal error is an unreachable datastore.
func (o *Orchestrator) Run(ctx context.Context) ([]Result, error) {
	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)

	rows, err := o.store.RetrieveUnprocessedWork(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve unprocessed work: %w", err)
	}
	episodes := GroupWork(rows)
	logger.Info("starting pipeline run", "episodes", len(episodes))

	results := make([]Result, 0, len(episodes))
	for _, ep := range episodes {
		res := o.processEpisode(ctx, logger, ep)
		switch res.State {
		case StateDone:
			logger.Info("episode processed", "episode", ep.EpisodeNumber, "stored", res.Stored)
		case StateSkipped:
			logger.Warn("episode skipped", "episode", ep.EpisodeNumber)
		case StateFailed:
			logger.Error("episode failed", "episode", ep.EpisodeNumber, "stage", res.FailedAt, "error", res.Err)
		}
		results = append(results, res)
	}

	logger.Info("pipeline run finished", "episodes", len(results))
	return results, nil
}

func (o *Orchestrator) processEpisode(ctx context.Context, logger *slog.Logger, ep models.EpisodeWork) Result {
	res := Result{EpisodeNumber: ep.EpisodeNumber, State: StatePending}

	res.State = StateTranscribing
	start := time.Now()
	transcriptPath, err := o.transcriber.GenerateTranscript(ctx, ep.FileName)
	if err != nil {
		return fail(res, fmt.Errorf("transcribe %s: %w", ep.FileName, err))
	}
	if o.metrics != nil {
		o.metrics.Record(metrics.OpTranscription, time.Since(start))
	}

	res.State = StateFormatting
	segments, err := o.formatter.FormatFile(transcriptPath, ep.LabelToName)
	if err != nil {
		return fail(res, fmt.Errorf("format %s: %w", transcriptPath, err))
	}

	// The exported artifact is the hand-off between formatting and
	// embedding; the embedding stage reads it back rather than using the
	// in-memory segments, so a restart can resume from the file.
	artifactPath, err := o.exporter.ExportSegments(segments, transcript.Stem(transcriptPath))
	if err != nil {
		return fail(res, fmt.Errorf("export formatted segments for episode %d: %w", ep.EpisodeNumber, err))
	}
	loaded, err := transcript.LoadSegments(artifactPath)
	if err != nil {
		return fail(res, fmt.Errorf("load formatted segments %s: %w", artifactPath, err))
	}

	processed := o.processor.Process(loaded)
	if len(processed) == 0 {
		logger.Warn("no segments survived cleaning", "episode", ep.EpisodeNumber)
		res.State = StateSkipped
		return res
	}

	res.State = StateEmbedding
	texts := make([]string, len(processed))
	for i, seg := range processed {
		texts[i] = seg.Text
	}
	vectors, err := o.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fail(res, fmt.Errorf("embed episode %d: %w", ep.EpisodeNumber, err))
	}

	records := make([]models.EmbeddingRecord, 0, len(processed))
	res.Distribution = make(map[models.SegmentType]int)
	dropped := make(map[string]int)
	for i, seg := range processed {
		speakerID, ok := ep.NameToID[seg.Speaker]
		if !ok {
			// A name with no id drops the segment, not the episode.
			dropped[seg.Speaker]++
			continue
		}
		records = append(records, models.EmbeddingRecord{
			SpeakerID: speakerID,
			Text:      seg.Text,
			Embedding: vectors[i],
		})
		res.Distribution[seg.Type]++
	}
	for name, count := range dropped {
		logger.Warn("segments dropped for unresolvable speaker name",
			"episode", ep.EpisodeNumber, "speaker", name, "count", count)
	}
	if len(records) == 0 {
		logger.Warn("no segments with resolvable speakers", "episode", ep.EpisodeNumber)
		res.State = StateSkipped
		return res
	}

	res.State = StateStoring
	if err := o.store.StoreEmbeddings(ctx, ep.EpisodeNumber, records); err != nil {
		return fail(res, fmt.Errorf("store episode %d: %w", ep.EpisodeNumber, err))
	}
	if err := o.store.MarkEpisodeProcessed(ctx, ep.EpisodeNumber); err != nil {
		return fail(res, fmt.Errorf("mark episode %d: %w", ep.EpisodeNumber, err))
	}

	res.Stored = len(records)
	res.State = StateDone
	return res
}

func fail(res Result, err error) Result {
	res.FailedAt = res.State
	res.State = StateFailed
	res.Err = err
	return res
}

// GroupWork folds the per-speaker work rows into one EpisodeWork per
// episode, preserving episode order.
func GroupWork(rows []models.WorkRow) []models.EpisodeWork {
	var episodes []models.EpisodeWork
	index := make(map[int]int)

	for _, row := range rows {
		i, ok := index[row.EpisodeNumber]
		if !ok {
			episodes = append(episodes, models.EpisodeWork{
				EpisodeNumber: row.EpisodeNumber,
				Title:         row.Title,
				FileName:      row.FileName,
				IsProcessed:   row.IsProcessed,
				LabelToName:   make(map[string]string),
				NameToID:      make(map[string]int),
			})
			i = len(episodes) - 1
			index[row.EpisodeNumber] = i
		}
		episodes[i].LabelToName[row.SpeakerNumber] = row.SpeakerName
		episodes[i].NameToID[row.SpeakerName] = row.SpeakerID
	}
	return episodes
}
