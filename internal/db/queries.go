package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rghoshroy/gent-disagreement-go/internal/metrics"
	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

// vectorLiteral renders an embedding as a pgvector text literal,
// e.g. "[0.1,0.2,...]", for binding with a ::vector cast.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// RetrieveUnprocessedWork returns one row per (episode, speaker) pair for
// every episode not yet embedded, ordered by episode then speaker number.
func (c *Client) RetrieveUnprocessedWork(ctx context.Context) ([]models.WorkRow, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT e.episode_number, e.title, e.file_name, e.is_processed,
		       es.speaker_number, s.name, s.id
		FROM episodes e
		JOIN episode_speakers es ON es.episode_id = e.episode_number
		JOIN speakers s ON s.id = es.speaker_id
		WHERE e.is_processed = FALSE
		ORDER BY e.episode_number, es.speaker_number`)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed work: %w", err)
	}
	defer rows.Close()

	var work []models.WorkRow
	for rows.Next() {
		var r models.WorkRow
		if err := rows.Scan(&r.EpisodeNumber, &r.Title, &r.FileName, &r.IsProcessed,
			&r.SpeakerNumber, &r.SpeakerName, &r.SpeakerID); err != nil {
			return nil, fmt.Errorf("scan work row: %w", err)
		}
		work = append(work, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work rows: %w", err)
	}
	return work, nil
}

// StoreEmbeddings inserts all records for an episode in one transaction.
// Either every record lands or none do.
func (c *Client) StoreEmbeddings(ctx context.Context, episodeNumber int, records []models.EmbeddingRecord) error {
	start := time.Now()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin store tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transcript_segments (episode_id, speaker_id, text, embedding)
		VALUES ($1, $2, $3, $4::vector)`)
	if err != nil {
		return fmt.Errorf("prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, episodeNumber, rec.SpeakerID, rec.Text, vectorLiteral(rec.Embedding)); err != nil {
			return fmt.Errorf("insert segment %d for episode %d: %w", i, episodeNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store tx: %w", err)
	}

	if c.metrics != nil {
		c.metrics.Record(metrics.OpDBStore, time.Since(start))
	}
	c.logger.Debug("stored embeddings", "episode", episodeNumber, "count", len(records))
	return nil
}

// MarkEpisodeProcessed flips the episode's processed flag after a
// successful store.
func (c *Client) MarkEpisodeProcessed(ctx context.Context, episodeNumber int) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE episodes SET is_processed = TRUE WHERE episode_number = $1`, episodeNumber)
	if err != nil {
		return fmt.Errorf("mark episode %d processed: %w", episodeNumber, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mark episode %d processed: no such episode", episodeNumber)
	}
	return nil
}

// SearchSimilar returns the limit segments closest to the query vector by
// cosine similarity, best match first.
func (c *Client) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]models.SearchResult, error) {
	// Below the cosine similarity floor of -1, so the filter never bites.
	return c.search(ctx, embedding, limit, -2)
}

// SearchSimilarAboveThreshold is SearchSimilar restricted to hits strictly
// above the threshold.
func (c *Client) SearchSimilarAboveThreshold(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error) {
	return c.search(ctx, embedding, limit, threshold)
}

func (c *Client) search(ctx context.Context, embedding []float32, limit int, threshold float64) ([]models.SearchResult, error) {
	start := time.Now()

	rows, err := c.db.QueryContext(ctx, `
		SELECT s.name, ts.text, 1 - (ts.embedding <=> $1::vector) AS similarity
		FROM transcript_segments ts
		JOIN speakers s ON s.id = ts.speaker_id
		WHERE 1 - (ts.embedding <=> $1::vector) > $2
		ORDER BY similarity DESC
		LIMIT $3`, vectorLiteral(embedding), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Speaker, &r.Text, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}

	if c.metrics != nil {
		c.metrics.Record(metrics.OpDBSearch, time.Since(start))
	}
	return results, nil
}
