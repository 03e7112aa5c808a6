package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-eld-log/internal/analyzer"
	"github.com/penwyp/go-eld-log/internal/data/watcher"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration
	watchNoClear  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the logs whenever the input files change",
	Long: `Watches the log file or directory given by --dir and redraws the output
after every burst of changes. New subdirectories are picked up automatically.
Only file sources can be watched.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"Quiet period before re-rendering (default from config, 300ms)")
	watchCmd.Flags().BoolVar(&watchNoClear, "no-clear", false,
		"Do not clear the screen between renders")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.DSN != "" {
		return fmt.Errorf("watch only supports file sources, got a database dsn")
	}

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := analyzer.New(ctx, analyzerConfig(cmd, cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	src, ok := a.Source().(*analyzer.FileSource)
	if !ok {
		return fmt.Errorf("watch only supports file sources")
	}

	return watchAndRender(ctx, a, src, cmd.OutOrStdout(), debounce, !watchNoClear)
}

// watchAndRender renders once, then again after every burst of changes to
// src, until ctx is done.
func watchAndRender(ctx context.Context, a *analyzer.Analyzer, src *analyzer.FileSource, out io.Writer, debounce time.Duration, clearScreen bool) error {
	fw, err := watcher.NewFileWatcher(src.Paths(), src.Matches)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", src.Describe(), err)
	}
	defer fw.Close()

	render := func() {
		if clearScreen {
			fmt.Fprint(out, util.ResetScreen())
		}
		if err := a.Run(ctx); err != nil {
			util.LogError("Render failed", util.F("error", err.Error()))
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	render()
	util.LogInfo("Watching for changes", util.F("path", src.Describe()), util.F("debounce", debounce.String()))
	fw.Run(ctx, debounce, func(events []watcher.FileEvent) {
		for _, e := range events {
			util.LogDebug("File changed", util.F("path", e.Path), util.F("op", e.Operation))
		}
		render()
	})
	return nil
}
