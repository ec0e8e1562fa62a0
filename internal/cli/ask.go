package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/rag"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question and get an LLM-synthesized answer",
	Long: `Ask a question about the podcast archive. Relevant transcript segments
are retrieved by similarity and the chat model synthesizes an answer
grounded in them.

Examples:
  gentdisagreement ask "What do the hosts think about tariffs?"
  gentdisagreement ask "When did they discuss the election?" --sources`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "print the retrieved segments after the answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	svc, err := getRAGService()
	if err != nil {
		return err
	}

	answer, sources, err := svc.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer: %w", err)
	}

	fmt.Println(answer)

	if askShowSources && len(sources) > 0 {
		fmt.Printf("\nSources:\n%s", rag.FormatResults(sources))
	}
	return nil
}
