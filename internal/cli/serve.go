package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/advisory"
	"github.com/tharunlokeshu/agriscout/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes vendor discovery, user input history, and crop
recommendations over HTTP.

Example:
  agriscout serve --addr :8080
  OPENAI_API_KEY=sk-... agriscout serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	d, history, cleanup, err := buildDiscoverer(cfg, logger, true)
	if err != nil {
		return err
	}
	defer cleanup()

	var advisor *advisory.Advisor
	provider, err := advisory.NewProvider(advisory.Config{
		Provider: cfg.Advisory.Provider,
		Model:    cfg.Advisory.Model,
		APIKey:   cfg.Advisory.APIKey,
		BaseURL:  cfg.Advisory.BaseURL,
	})
	if err != nil {
		logger.Warn("advisory provider unavailable, using defaults", zap.Error(err))
	}
	advisor = advisory.NewAdvisor(provider, logger)

	srv := server.New(d, history, advisor, logger)
	return srv.ListenAndServe(ctx, serveAddr)
}
