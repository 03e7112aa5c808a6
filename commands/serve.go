package commands

import (
	"github.com/gin-gonic/gin"
	"github.com/penwyp/go-eld-log/internal/analyzer"
	"github.com/penwyp/go-eld-log/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve computed daily logs over HTTP",
	Long: `Starts an HTTP server exposing the daily logs as JSON:

  GET /healthz
  GET /api/logs                 dates with records
  GET /api/logs/:date           totals, path and annotations for one day
  GET /api/logs/:date/remarks   remarks for one day
  GET /api/logs/:date/ics       one day as an iCalendar file

Every request reloads the source, so edits show up without a restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := analyzer.New(ctx, analyzerConfig(cmd, cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return server.Run(ctx, cfg.Server.Addr, server.NewRouter(a))
}
