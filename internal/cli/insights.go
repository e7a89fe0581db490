package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/insights"
)

var (
	insightsJSON    bool
	insightsSummary bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights [cluster-id]",
	Short: "Analyze knowledge clusters",
	Long: `Reports statistics, hub documents, dominant tags, connections and
content samples for every cluster, or for one cluster when an id is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "output results as JSON")
	insightsCmd.Flags().BoolVar(&insightsSummary, "summary", false, "print a one-line-per-cluster table")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cluster id %q", args[0])
		}
		analysis, err := engine.InsightsForCluster(ctx, spaces, id)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	result, err := engine.Insights(ctx, spaces)
	if err != nil {
		return fmt.Errorf("analyzing clusters: %w", err)
	}

	switch {
	case insightsJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case insightsSummary:
		cmd.Print(insights.FormatSummary(result))
	default:
		cmd.Print(insights.Format(result, engine.Config.Insights.IncludeSamples))
	}
	return nil
}
