package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the database schema",
	Long: `Drop all tables, including stored embeddings, and recreate the schema.
Requires --yes to run.

Examples:
  gentdisagreement reset --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the destructive reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("reset drops all stored data; rerun with --yes to confirm")
	}
	if err := dbClient.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Println("Schema reset. Run 'seed' to reload episodes.")
	return nil
}
