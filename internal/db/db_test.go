package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rghoshroy/gent-disagreement-go/internal/llm"
	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

var testClient *Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "pgvector/pgvector:pg16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "gent_disagreement_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "container host: %v\n", err)
		os.Exit(1)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "container port: %v\n", err)
		os.Exit(1)
	}

	testClient = NewClient(nil, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	if err := testClient.Connect(ctx, Config{
		Host:     host,
		Port:     port.Port(),
		User:     "test",
		Password: "test",
		Database: "gent_disagreement_test",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testClient.Close()
	container.Terminate(ctx)
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	if err := testClient.Reset(context.Background()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
}

func seedFixture(t *testing.T) {
	t.Helper()
	err := testClient.Seed(context.Background(), models.SeedFile{
		Episodes: []models.SeedEpisode{
			{
				EpisodeNumber: 180,
				Title:         "Episode 180",
				FileName:      "AGD-180.mp3",
				DatePublished: "2025-01-15",
				Speakers: []models.SeedSpeaker{
					{SpeakerNumber: "0", Name: "Ricky Ghoshroy"},
					{SpeakerNumber: "1", Name: "Brendan Kelly"},
				},
			},
			{
				EpisodeNumber: 181,
				Title:         "Episode 181",
				FileName:      "AGD-181.mp3",
				Speakers: []models.SeedSpeaker{
					{SpeakerNumber: "0", Name: "Ricky Ghoshroy"},
					{SpeakerNumber: "1", Name: "Brendan Kelly"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("seed fixture: %v", err)
	}
}

// unitVector returns a 1536-dim vector with a single 1 at position i.
// Distinct positions are orthogonal, so cosine similarity between them is 0.
func unitVector(i int) []float32 {
	v := make([]float32, llm.EmbeddingDimension)
	v[i] = 1
	return v
}

func TestSeedIsIdempotent(t *testing.T) {
	resetDB(t)
	seedFixture(t)
	seedFixture(t)

	var speakers int
	if err := testClient.DB().QueryRow(`SELECT COUNT(*) FROM speakers`).Scan(&speakers); err != nil {
		t.Fatalf("count speakers: %v", err)
	}
	if speakers != 2 {
		t.Errorf("got %d speakers after double seed, want 2", speakers)
	}
}

func TestRetrieveUnprocessedWork(t *testing.T) {
	resetDB(t)
	seedFixture(t)
	ctx := context.Background()

	work, err := testClient.RetrieveUnprocessedWork(ctx)
	if err != nil {
		t.Fatalf("retrieve work: %v", err)
	}
	if len(work) != 4 {
		t.Fatalf("got %d work rows, want 4 (2 episodes x 2 speakers)", len(work))
	}
	// ordered by episode then speaker number
	wantEpisodes := []int{180, 180, 181, 181}
	wantLabels := []string{"0", "1", "0", "1"}
	for i, row := range work {
		if row.EpisodeNumber != wantEpisodes[i] || row.SpeakerNumber != wantLabels[i] {
			t.Errorf("row %d = episode %d label %q, want episode %d label %q",
				i, row.EpisodeNumber, row.SpeakerNumber, wantEpisodes[i], wantLabels[i])
		}
		if row.SpeakerName == "" || row.SpeakerID == 0 {
			t.Errorf("row %d missing speaker identity: %+v", i, row)
		}
	}

	if err := testClient.MarkEpisodeProcessed(ctx, 180); err != nil {
		t.Fatalf("mark processed: %v", err)
	}
	work, err = testClient.RetrieveUnprocessedWork(ctx)
	if err != nil {
		t.Fatalf("retrieve work after mark: %v", err)
	}
	for _, row := range work {
		if row.EpisodeNumber == 180 {
			t.Errorf("processed episode 180 still returned as work")
		}
	}
}

func TestMarkEpisodeProcessedMissing(t *testing.T) {
	resetDB(t)
	if err := testClient.MarkEpisodeProcessed(context.Background(), 999); err == nil {
		t.Error("expected error marking unknown episode")
	}
}

func TestStoreEmbeddingsAndSearch(t *testing.T) {
	resetDB(t)
	seedFixture(t)
	ctx := context.Background()

	var rickyID, brendanID int
	if err := testClient.DB().QueryRow(`SELECT id FROM speakers WHERE name = 'Ricky Ghoshroy'`).Scan(&rickyID); err != nil {
		t.Fatalf("lookup speaker: %v", err)
	}
	if err := testClient.DB().QueryRow(`SELECT id FROM speakers WHERE name = 'Brendan Kelly'`).Scan(&brendanID); err != nil {
		t.Fatalf("lookup speaker: %v", err)
	}

	err := testClient.StoreEmbeddings(ctx, 180, []models.EmbeddingRecord{
		{SpeakerID: rickyID, Text: "Talking about tariffs.", Embedding: unitVector(0)},
		{SpeakerID: brendanID, Text: "Talking about baseball.", Embedding: unitVector(1)},
	})
	if err != nil {
		t.Fatalf("store embeddings: %v", err)
	}

	results, err := testClient.SearchSimilar(ctx, unitVector(0), 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Text != "Talking about tariffs." || results[0].Speaker != "Ricky Ghoshroy" {
		t.Errorf("best match = %+v, want the tariffs segment by Ricky Ghoshroy", results[0])
	}
	if results[0].Similarity < 0.999 {
		t.Errorf("identical vector similarity = %f, want ~1", results[0].Similarity)
	}
	if results[1].Similarity > 0.001 {
		t.Errorf("orthogonal vector similarity = %f, want ~0", results[1].Similarity)
	}

	filtered, err := testClient.SearchSimilarAboveThreshold(ctx, unitVector(0), 5, 0.5)
	if err != nil {
		t.Fatalf("threshold search: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("got %d filtered results, want 1", len(filtered))
	}
	if filtered[0].Text != "Talking about tariffs." {
		t.Errorf("filtered match = %+v", filtered[0])
	}

	// The threshold is strict: the orthogonal segment sits at exactly 0
	// similarity and must not pass a 0 threshold.
	strict, err := testClient.SearchSimilarAboveThreshold(ctx, unitVector(0), 5, 0)
	if err != nil {
		t.Fatalf("strict threshold search: %v", err)
	}
	if len(strict) != 1 {
		t.Errorf("got %d results at threshold 0, want 1 (boundary excluded)", len(strict))
	}
}

func TestStoreEmbeddingsAtomic(t *testing.T) {
	resetDB(t)
	seedFixture(t)
	ctx := context.Background()

	var rickyID int
	if err := testClient.DB().QueryRow(`SELECT id FROM speakers WHERE name = 'Ricky Ghoshroy'`).Scan(&rickyID); err != nil {
		t.Fatalf("lookup speaker: %v", err)
	}

	// second record violates the speaker foreign key, the whole batch must roll back
	err := testClient.StoreEmbeddings(ctx, 180, []models.EmbeddingRecord{
		{SpeakerID: rickyID, Text: "Valid.", Embedding: unitVector(0)},
		{SpeakerID: 99999, Text: "Invalid speaker.", Embedding: unitVector(1)},
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}

	var count int
	if err := testClient.DB().QueryRow(`SELECT COUNT(*) FROM transcript_segments`).Scan(&count); err != nil {
		t.Fatalf("count segments: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d segments after failed batch, want 0", count)
	}
}

func TestVectorLiteral(t *testing.T) {
	got := vectorLiteral([]float32{0.5, -1, 0})
	if got != "[0.5,-1,0]" {
		t.Errorf("vectorLiteral = %q", got)
	}
}
