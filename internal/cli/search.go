package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tripnotes/internal/service"
	"tripnotes/internal/store"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search previously analyzed content by similarity",
	Long: `Search runs a vector similarity query over the documents saved by
earlier analyze runs.

Examples:
  tripnotes search "ramen in Osaka"
  tripnotes search "night views" -n 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "max results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	searcher := service.NewSearcher(st, collector)
	results, err := searcher.Search(ctx, args[0], searchLimit)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			fmt.Println("No analyses saved yet. Run 'tripnotes analyze' first.")
			return nil
		}
		return fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	for i, doc := range results {
		fmt.Printf("%d. [%.3f] %s\n", i+1, doc.Score, doc.Content)
		if typ, ok := doc.Metadata["type"].(string); ok {
			fmt.Printf("   type: %s\n", typ)
		}
		if url, ok := doc.Metadata["url"].(string); ok {
			fmt.Printf("   url: %s\n", url)
		}
		fmt.Println()
	}

	return nil
}
