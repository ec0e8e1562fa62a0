package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/models"
	"github.com/rghoshroy/gent-disagreement-go/internal/rag"
)

var (
	searchLimit     int
	searchThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find transcript segments similar to a query",
	Long: `Search stored transcript segments by semantic similarity without LLM
synthesis. Use 'ask' for a synthesized answer.

Examples:
  gentdisagreement search "tariffs"
  gentdisagreement search "supreme court" --limit 10 --threshold 0.6`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", rag.DefaultLimit, "max results")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "minimum cosine similarity (0 disables)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	svc, err := getRAGService()
	if err != nil {
		return err
	}

	var results []models.SearchResult
	if searchThreshold > 0 {
		results, err = svc.SearchAboveThreshold(ctx, query, searchLimit, searchThreshold)
	} else {
		results, err = svc.Search(ctx, query, searchLimit)
	}
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	fmt.Print(rag.FormatResults(results))
	return nil
}
