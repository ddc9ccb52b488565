package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeNoStore bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>...",
	Short: "Analyze travel content from up to five URLs",
	Long: `Analyze fetches each URL (video transcript, webpage text, or plain
text file), summarizes the combined content, enriches every mentioned
place, and prints the final report.

Examples:
  tripnotes analyze https://youtu.be/dQw4w9WgXcQ
  tripnotes analyze https://youtu.be/abc https://example.com/osaka-guide
  tripnotes analyze --no-store https://example.com/notes.txt`,
	Args: cobra.RangeArgs(1, 5),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "skip persisting the analysis for later search")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	analyzer, err := buildAnalyzer(ctx, !analyzeNoStore)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, args)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	fmt.Println(result.Report)
	return nil
}
