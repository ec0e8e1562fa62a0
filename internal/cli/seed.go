package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
)

var seedFilePath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed episodes and speaker mappings from a YAML file",
	Long: `Load episodes, speakers, and per-episode diarization label mappings from
a YAML seed file. Existing rows are updated, so the command is safe to
run repeatedly.

Examples:
  gentdisagreement seed
  gentdisagreement seed --file episodes.yaml`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFilePath, "file", "f", "episodes.yaml", "seed file path")
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(seedFilePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed models.SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", seedFilePath, err)
	}
	if len(seed.Episodes) == 0 {
		return fmt.Errorf("seed file %s contains no episodes", seedFilePath)
	}

	if err := dbClient.Seed(context.Background(), seed); err != nil {
		return err
	}

	fmt.Printf("Seeded %d episodes from %s\n", len(seed.Episodes), seedFilePath)
	return nil
}
