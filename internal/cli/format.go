package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rghoshroy/gent-disagreement-go/internal/transcript"
)

var formatSpeakers map[string]string

var formatCmd = &cobra.Command{
	Use:   "format <raw-transcript.json>",
	Short: "Format a saved raw transcript into speaker segments",
	Long: `Run the formatting stage standalone against a previously saved raw
transcript. The cleaned, speaker-attributed segments are written to the
formatted output directory as <stem>.json.

Examples:
  gentdisagreement format data/transcripts/raw/AGD-180.json \
    --speakers "0=Ricky Ghoshroy,1=Brendan Kelly"`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringToStringVar(&formatSpeakers, "speakers", nil,
		"diarization label to speaker name mapping, e.g. 0=Ricky,1=Brendan")
	formatCmd.MarkFlagRequired("speakers")
}

func runFormat(cmd *cobra.Command, args []string) error {
	rawPath := args[0]

	formatter := transcript.NewFormatter(logger)
	segments, err := formatter.FormatFile(rawPath, formatSpeakers)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return fmt.Errorf("no segments produced from %s", rawPath)
	}

	exporter, err := transcript.NewExporter(cfg.FormattedOutputDir)
	if err != nil {
		return err
	}
	outPath, err := exporter.ExportSegments(segments, transcript.Stem(rawPath))
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d segments to %s\n", len(segments), outPath)
	return nil
}
