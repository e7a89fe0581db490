package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/gaps"
)

var gapsJSON bool

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Detect semantically close but poorly linked cluster pairs",
	RunE:  runGaps,
}

func init() {
	gapsCmd.Flags().BoolVar(&gapsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Gaps(ctx, spaces)
	if err != nil {
		return fmt.Errorf("detecting gaps: %w", err)
	}

	if gapsJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(gaps.Format(result))
	return nil
}
