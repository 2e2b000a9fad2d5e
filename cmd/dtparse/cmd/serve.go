package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	dtlog "github.com/msto63/dtparse/core/log"
	"github.com/msto63/dtparse/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket API",
	Long: `Starts the dtparse API server.

Endpoints:
  POST /api/v1/parse       {"text": "...", "locale": "de", "field_order": "dmy"}
  GET  /api/v1/tokenize    ?text=...&locale=...
  GET  /api/v1/locales
  GET  /api/v1/parse/ws    WebSocket stream of parse requests
  GET  /health

Without a locale in the request the Accept-Language header decides.
With --watch, changes in --locales-dir are picked up without a restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen address (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the locale directory on change")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		appConfig.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		appConfig.Server.Port = servePort
	}
	if cmd.Flags().Changed("watch") {
		appConfig.Locales.Watch = serveWatch
	}

	parsers, err := newParsers()
	if err != nil {
		printError("creating parser", err)
		return err
	}

	logger := dtlog.GetDefault()
	srv := server.New(server.ConfigFrom(appConfig, Version), parsers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.ErrorWithErr("Server stopped with error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
