// Package deepgram is the transcription provider boundary: audio bytes in,
// diarized paragraph tree out.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const listenURL = "https://api.deepgram.com/v1/listen"

// Transcription settings for podcast episodes. Diarization and paragraphs
// are required by the formatter; filler words are dropped at the source.
const (
	modelName = "nova-3"
	language  = "en"
)

// Client calls the Deepgram prerecorded transcription API and persists raw
// responses as JSON artifacts in the transcript output directory.
type Client struct {
	apiKey     string
	httpClient *http.Client
	audioDir   string
	outputDir  string
	logger     *slog.Logger
}

// NewClient validates the API key and directories up front; a missing or
// obviously bogus key is a startup error, not something to discover one
// episode into a run.
func NewClient(apiKey, audioDir, outputDir string, logger *slog.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY not set")
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY appears to be invalid (too short)")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript output dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			// Whole-file transcription of an hour-long episode is slow.
			Timeout: 10 * time.Minute,
		},
		audioDir:  audioDir,
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// GenerateTranscript transcribes one audio file from the audio directory and
// writes the raw provider response to <stem>.json in the output directory.
// Returns the path of the saved artifact.
func (c *Client) GenerateTranscript(ctx context.Context, fileName string) (string, error) {
	audioPath := filepath.Join(c.audioDir, fileName)
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	c.logger.Info("transcribing audio", "file", fileName, "bytes", len(audio))

	body, err := c.transcribe(ctx, audio, contentType(fileName))
	if err != nil {
		return "", err
	}

	// Decode before persisting so a malformed provider response is caught
	// here rather than at format time.
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	if len(resp.Paragraphs()) == 0 {
		return "", fmt.Errorf("transcription response has no paragraphs for %s", fileName)
	}

	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	outPath := filepath.Join(c.outputDir, stem+".json")
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return "", fmt.Errorf("save raw transcript: %w", err)
	}

	c.logger.Info("raw transcript saved", "path", outPath, "paragraphs", len(resp.Paragraphs()))
	return outPath, nil
}

// transcribe posts the audio bytes, retrying transient failures with
// exponential backoff. 4xx responses are permanent.
func (c *Client) transcribe(ctx context.Context, audio []byte, mimeType string) ([]byte, error) {
	endpoint := listenURL + "?" + listenOptions().Encode()

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Token "+c.apiKey)
		req.Header.Set("Content-Type", mimeType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("transcription server error: %s: %s", resp.Status, data)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("transcription request rejected: %s: %s", resp.Status, data))
		}
		body = data
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return body, nil
}

func listenOptions() url.Values {
	q := url.Values{}
	q.Set("model", modelName)
	q.Set("language", language)
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")
	q.Set("paragraphs", "true")
	q.Set("diarize", "true")
	q.Set("filler_words", "false")
	return q
}

func contentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
