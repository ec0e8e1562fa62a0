package db

import (
	"context"
	"fmt"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS episodes (
    episode_number INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    file_name TEXT NOT NULL,
    date_published DATE,
    is_processed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS speakers (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS episode_speakers (
    episode_id INTEGER NOT NULL REFERENCES episodes(episode_number) ON DELETE CASCADE,
    speaker_number TEXT NOT NULL,
    speaker_id INTEGER NOT NULL REFERENCES speakers(id) ON DELETE CASCADE,
    PRIMARY KEY (episode_id, speaker_number)
);

CREATE TABLE IF NOT EXISTS transcript_segments (
    id SERIAL PRIMARY KEY,
    episode_id INTEGER NOT NULL REFERENCES episodes(episode_number) ON DELETE CASCADE,
    speaker_id INTEGER NOT NULL REFERENCES speakers(id),
    text TEXT NOT NULL,
    embedding vector(1536) NOT NULL
);
`

const dropSQL = `
DROP TABLE IF EXISTS transcript_segments;
DROP TABLE IF EXISTS episode_speakers;
DROP TABLE IF EXISTS speakers;
DROP TABLE IF EXISTS episodes;
`

// InitSchema creates the extension and tables if they do not exist.
func (c *Client) InitSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Reset drops all tables and recreates the schema. Destructive.
func (c *Client) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, dropSQL); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	c.logger.Info("dropped all tables")
	return c.InitSchema(ctx)
}

// Seed upserts episodes, speakers, and the per-episode diarization label
// mapping from a seed file. Safe to run repeatedly.
func (c *Client) Seed(ctx context.Context, seed models.SeedFile) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, ep := range seed.Episodes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO episodes (episode_number, title, file_name, date_published)
			VALUES ($1, $2, $3, NULLIF($4, '')::date)
			ON CONFLICT (episode_number) DO UPDATE
			SET title = EXCLUDED.title, file_name = EXCLUDED.file_name, date_published = EXCLUDED.date_published`,
			ep.EpisodeNumber, ep.Title, ep.FileName, ep.DatePublished)
		if err != nil {
			return fmt.Errorf("seed episode %d: %w", ep.EpisodeNumber, err)
		}

		for _, sp := range ep.Speakers {
			var speakerID int
			err := tx.QueryRowContext(ctx, `
				INSERT INTO speakers (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`, sp.Name).Scan(&speakerID)
			if err != nil {
				return fmt.Errorf("seed speaker %q: %w", sp.Name, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO episode_speakers (episode_id, speaker_number, speaker_id)
				VALUES ($1, $2, $3)
				ON CONFLICT (episode_id, speaker_number) DO UPDATE
				SET speaker_id = EXCLUDED.speaker_id`,
				ep.EpisodeNumber, sp.SpeakerNumber, speakerID)
			if err != nil {
				return fmt.Errorf("seed episode %d speaker mapping %q: %w", ep.EpisodeNumber, sp.SpeakerNumber, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	c.logger.Info("seeded database", "episodes", len(seed.Episodes))
	return nil
}
