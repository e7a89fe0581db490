package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pulseID   string
	pulseNote string
	pulseList bool
)

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Snapshot the graph and diff it against the previous snapshot",
	RunE:  runPulse,
}

func init() {
	pulseCmd.Flags().StringVar(&pulseID, "id", "", "snapshot id (default: timestamp)")
	pulseCmd.Flags().StringVar(&pulseNote, "note", "", "note to attach to the snapshot")
	pulseCmd.Flags().BoolVar(&pulseList, "list", false, "list stored snapshots instead of capturing")
	rootCmd.AddCommand(pulseCmd)
}

func runPulse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	if pulseList {
		ids, err := engine.Pulses.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			cmd.Println("No pulses stored.")
			return nil
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	}

	snap, err := engine.Pulse(ctx, spaces, pulseID, pulseNote)
	if err != nil {
		return fmt.Errorf("capturing pulse: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
