package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/rag"
)

var (
	chatPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	chatAnswerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	chatSourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

var chatShowSources bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-answering session",
	Long: `Start an interactive session against the podcast archive. Each question
is answered the same way as 'ask'. Type 'exit' or 'quit' to leave.

Examples:
  gentdisagreement chat
  gentdisagreement chat --sources`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatShowSources, "sources", false, "print retrieved segments after each answer")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := getRAGService()
	if err != nil {
		return err
	}

	fmt.Println("Ask about A Gentleman's Disagreement. Type 'exit' to leave.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(chatPromptStyle.Render("you> ") + " ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, sources, err := svc.Answer(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Println(chatAnswerStyle.Render(answer))
		if chatShowSources && len(sources) > 0 {
			fmt.Println(chatSourceStyle.Render(rag.FormatResults(sources)))
		}
		fmt.Println()
	}

	return scanner.Err()
}
