package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/digest"
)

var digestJSON bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Suggest links between similar but unconnected documents",
	RunE:  runDigest,
}

func init() {
	digestCmd.Flags().BoolVar(&digestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Digest(ctx, spaces)
	if err != nil {
		return fmt.Errorf("generating digest: %w", err)
	}

	if digestJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(digest.Format(result))
	return nil
}
