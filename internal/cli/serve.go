package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	host := engine.Config.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := engine.Config.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.NewServer(engine)
	addr := fmt.Sprintf("%s:%d", host, port)
	slog.Info("starting server", "addr", addr)
	return srv.SetupRouter().Run(addr)
}
