// Package serve runs the HTTP API
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bank-statementer/statementer/cmd/root"
	"github.com/bank-statementer/statementer/internal/api"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statement upload and categorization API",
	Long: `Start the HTTP API used by the web frontend:

  POST /transactions  upload a statement CSV and get categorized transactions
  POST /categorize    record a category correction and re-categorize a batch
  GET  /tags          list stored tags
  GET  /ping          liveness check
  GET  /metrics       Prometheus metrics

The default embedding.provider "hashing" runs offline and only matches
descriptions that share words or spellings. Set embedding.provider to
"gemini" or "openai" for semantic matching.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := root.GetContainer(ctx)
	if err != nil {
		return err
	}
	cfg := c.GetConfig()

	opts := api.Options{
		Address:        cfg.Server.Address,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxConnections: cfg.Server.MaxConnections,
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
	}
	if address != "" {
		opts.Address = address
	}

	handlers := api.NewHandlers(c.GetParser(), c.GetCategorizer(), c.GetStore(), cfg.MaxUploadBytes(), c.GetLogger())
	server := api.New(opts, handlers, c.GetRegistry(), c.GetMetrics(), c.GetLogger())
	return server.ListenAndServe(ctx)
}
