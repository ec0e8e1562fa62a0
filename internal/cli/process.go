package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/deepgram"
	"github.com/rghoshroy/gent-disagreement-go/internal/pipeline"
	"github.com/rghoshroy/gent-disagreement-go/internal/transcript"
)

var processStats bool

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full pipeline over all unprocessed episodes",
	Long: `Process every episode not yet marked as processed: transcribe the audio
with speaker diarization, format and clean the transcript, embed the
segments, and store them.

A failing episode is reported and skipped; the run continues with the
next one.

Examples:
  gentdisagreement process
  gentdisagreement process --stats`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processStats, "stats", false, "print operation timings after the run")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	transcriber, err := deepgram.NewClient(cfg.DeepgramAPIKey, cfg.AudioDir, cfg.TranscriptOutputDir, logger)
	if err != nil {
		return fmt.Errorf("init transcriber: %w", err)
	}
	exporter, err := transcript.NewExporter(cfg.FormattedOutputDir)
	if err != nil {
		return fmt.Errorf("init exporter: %w", err)
	}
	emb, err := getEmbedder()
	if err != nil {
		return err
	}

	orchestrator := pipeline.NewOrchestrator(transcriber, exporter, emb, dbClient, collector, logger)
	results, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No unprocessed episodes.")
		return nil
	}

	done, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch res.State {
		case pipeline.StateDone:
			done++
			fmt.Printf("episode %d: done, %d segments stored", res.EpisodeNumber, res.Stored)
			if len(res.Distribution) > 0 {
				fmt.Printf(" (%v)", res.Distribution)
			}
			fmt.Println()
		case pipeline.StateSkipped:
			skipped++
			fmt.Printf("episode %d: skipped, no usable segments\n", res.EpisodeNumber)
		case pipeline.StateFailed:
			failed++
			fmt.Printf("episode %d: failed at %s: %v\n", res.EpisodeNumber, res.FailedAt, res.Err)
		}
	}
	fmt.Printf("\n%d done, %d skipped, %d failed\n", done, skipped, failed)

	if processStats {
		fmt.Println("\nOperation timings:")
		for op, stats := range collector.Snapshot() {
			fmt.Printf("  %-14s count=%d avg=%v min=%v max=%v\n",
				op, stats.Count, stats.Average(), stats.MinDuration, stats.MaxDuration)
		}
	}
	return nil
}
