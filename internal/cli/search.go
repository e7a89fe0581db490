package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/search"
)

var (
	searchTopK     int
	searchNoExpand bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve documents relevant to a query",
	Long: `Embeds the query, finds the closest documents by vector similarity,
expands one hop along graph links, and re-ranks the candidates.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchNoExpand, "no-expand", false, "skip graph neighborhood expansion")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	topK := searchTopK
	if topK <= 0 {
		topK = engine.Config.Search.TopK
	}
	expand := engine.Config.Search.Expand && !searchNoExpand

	results, err := engine.Search(ctx, spaces, args[0], topK, expand)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(search.Format(results))
	return nil
}
