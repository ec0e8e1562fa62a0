// Package cli provides the command-line interface for the podcast RAG
// pipeline.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/config"
	"github.com/rghoshroy/gent-disagreement-go/internal/db"
	"github.com/rghoshroy/gent-disagreement-go/internal/llm"
	"github.com/rghoshroy/gent-disagreement-go/internal/metrics"
	"github.com/rghoshroy/gent-disagreement-go/internal/rag"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, logger, and db client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	dbClient   *db.Client
	collector  *metrics.Collector

	// Lazy-initialized LLM components
	embedder *llm.Embedder
	model    *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gentdisagreement",
	Short: "Podcast transcription and RAG pipeline",
	Long: `Pipeline tooling for "A Gentleman's Disagreement": transcribes episode
audio with speaker diarization, formats and cleans the transcripts,
embeds the segments, and answers questions over the stored archive.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config and DB for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		collector = metrics.NewCollector()

		ctx := context.Background()
		dbClient = db.NewClient(collector, logger)
		if err := dbClient.Connect(ctx, cfg.DB); err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			logCleanup()
		}
	},
}

// getEmbedder lazily initializes the OpenAI embedder.
func getEmbedder() (*llm.Embedder, error) {
	if embedder == nil {
		var err error
		embedder, err = llm.NewEmbedder(cfg.OpenAIAPIKey, collector, logger)
		if err != nil {
			return nil, fmt.Errorf("init embedder: %w", err)
		}
	}
	return embedder, nil
}

// getModel lazily initializes the OpenAI chat model.
func getModel() (*llm.Model, error) {
	if model == nil {
		var err error
		model, err = llm.NewModel(cfg.OpenAIAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("init model: %w", err)
		}
	}
	return model, nil
}

// getRAGService wires the retrieval and generation components.
func getRAGService() (*rag.Service, error) {
	emb, err := getEmbedder()
	if err != nil {
		return nil, err
	}
	mdl, err := getModel()
	if err != nil {
		return nil, err
	}
	return rag.NewService(emb, dbClient, mdl, logger), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
}
