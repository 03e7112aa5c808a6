package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/penwyp/go-eld-log/internal/analyzer"
	"github.com/penwyp/go-eld-log/internal/config"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Config and sources
	configPath string
	dataDir    string
	dsn        string
	tripID     int64

	// Output related
	outputFormat string
	timezone     string
	width        int
	noColor      bool
	strictTotals bool

	// Date selection
	dates    []string
	fromDate string
	toDate   string
	duration string

	rootCmd = &cobra.Command{
		Use:   "go-eld-log [flags]",
		Short: "Driver's daily log (ELD) renderer",
		Long: `go-eld-log turns a trip's duty status records into driver's daily log sheets.

Records are read from JSON or JSONL files, or from a trips_logentry table in
sqlite or postgres. Each calendar day is normalized, totalled per duty status
and drawn as the classic four row duty status grid.

Examples:
  go-eld-log --dir ./logs                              # Table of daily totals
  go-eld-log --dir ./logs -o graph                     # Draw the duty status grids
  go-eld-log --dir ./logs -o summary --duration 8d     # Recap of the last 8 days
  go-eld-log --db eld.db --trip 42 --date 2025-06-10   # One day of a trip from sqlite
  go-eld-log --dir ./logs -o ics > trip.ics            # Export as calendar events`,
		SilenceUsage: true,
		RunE:         runRender,
	}
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.config/go-eld-log/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"Log file or directory of .json/.jsonl files")
	rootCmd.PersistentFlags().StringVar(&dsn, "db", "",
		"Database DSN: postgres URL or sqlite path")
	rootCmd.PersistentFlags().Int64Var(&tripID, "trip", 0,
		"Trip id to read from the database")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone the log days are laid out in (e.g., America/Chicago, UTC)")
	rootCmd.PersistentFlags().BoolVar(&strictTotals, "strict-totals", false,
		"Do not count uncovered time as off duty")

	// Date selection
	rootCmd.PersistentFlags().StringSliceVar(&dates, "date", nil,
		"Only render these dates (YYYY-MM-DD, repeatable)")
	rootCmd.PersistentFlags().StringVar(&fromDate, "from", "",
		"First date to render (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&toDate, "to", "",
		"Last date to render (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVarP(&duration, "duration", "d", "",
		"Days to look back including today (e.g., 8d, 2w, 1m)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"Output format (table, summary, json, csv, graph, ics)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0,
		"Graph width in columns (0 = terminal width)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := analyzer.New(ctx, analyzerConfig(cmd, cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file, lets changed flags override it, then
// initializes logging and the timezone.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	if err := initLogging(cfg); err != nil {
		return nil, err
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}
	util.LogDebug("Configuration loaded",
		util.F("timezone", cfg.Timezone),
		util.F("dir", cfg.Data.Dir),
		util.F("db", cfg.Database.DSN != ""))
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Data.Dir = dataDir
	}
	if flags.Changed("db") {
		cfg.Database.DSN = dsn
	}
	if flags.Changed("trip") {
		cfg.Database.TripID = tripID
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("width") {
		cfg.Output.Width = width
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !noColor
	}
	if flags.Changed("strict-totals") {
		cfg.Output.StrictTotals = strictTotals
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	cfg.Data.Dir = expandPath(cfg.Data.Dir)
}

func initLogging(cfg *config.Config) error {
	logFile := ""
	if cfg.Log.File != "" {
		logFile = expandPath(cfg.Log.File)
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return util.InitLogger(util.LoggerOptions{
		Level:   cfg.Log.Level,
		File:    logFile,
		Format:  util.LogFormat(cfg.Log.Format),
		Console: debug,
	})
}

func analyzerConfig(cmd *cobra.Command, cfg *config.Config) *analyzer.Config {
	return &analyzer.Config{
		DataDir:      cfg.Data.Dir,
		DSN:          cfg.Database.DSN,
		TripID:       cfg.Database.TripID,
		OutputFormat: cfg.Output.Format,
		Timezone:     cfg.Timezone,
		Concurrency:  cfg.Data.Concurrency,
		Dates:        dates,
		From:         fromDate,
		To:           toDate,
		Duration:     duration,
		StrictTotals: cfg.Output.StrictTotals,
		RemarkKinds:  cfg.Output.RemarkKinds,
		Width:        cfg.Output.Width,
		Color:        cfg.Output.Color,
		Output:       cmd.OutOrStdout(),
	}
}

// signalContext is cancelled on the first interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Helper functions

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
