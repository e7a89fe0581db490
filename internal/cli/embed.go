package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var embedForce bool

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Compute embeddings for every document",
	Long: `Embeds each document's title and content prefix, reusing cached
vectors whose content hash and model are unchanged.`,
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().BoolVarP(&embedForce, "force", "f", false, "recompute even when cached")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	g, err := engine.BuildGraph(ctx, spaces)
	if err != nil {
		return err
	}
	docs := g.Documents()
	if len(docs) == 0 {
		color.New(color.FgYellow).Fprintln(os.Stderr, "No documents to embed")
		return nil
	}

	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionSetDescription("embedding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	engine.Service.OnProgress = func(done, total int) {
		bar.Set(done)
	}

	vectors, err := engine.Service.GetEmbeddings(ctx, docs, embedForce)
	if err != nil {
		return fmt.Errorf("computing embeddings: %w", err)
	}
	bar.Finish()

	color.New(color.FgGreen).Fprintf(os.Stderr, "Embedded %d documents (model %s)\n",
		len(vectors), engine.Service.Model())
	return nil
}
