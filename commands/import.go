package commands

import (
	"fmt"
	"sort"

	"github.com/penwyp/go-eld-log/internal/data/parser"
	"github.com/penwyp/go-eld-log/internal/data/scanner"
	"github.com/penwyp/go-eld-log/internal/data/store"
	"github.com/penwyp/go-eld-log/internal/util"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load log files into the trips_logentry table",
	Long: `Parses the files under --dir and inserts every record into the database
given by --db under trip --trip, creating the table when it is missing.
Records without a date or without both timestamps are skipped.

Example:
  go-eld-log import --dir ./logs --db eld.db --trip 42`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("import needs a database, set --db or ELD_DB_DSN")
	}
	if cfg.Database.TripID <= 0 {
		return fmt.Errorf("import needs a positive --trip id")
	}

	files, err := scanner.NewFileScanner(cfg.Data.Dir).Scan()
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no log files found in %s", cfg.Data.Dir)
	}

	loc := util.GetTimeProvider().Location()
	set, errs := parser.NewParser(cfg.Data.Concurrency, loc).ParseAll(files)
	for _, err := range errs {
		util.LogWarnf("Failed to parse file: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	db, driver, err := store.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.NewLogEntryRepo(db, driver)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	dates := make([]string, 0, len(set))
	for date := range set {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	inserted, skipped := 0, 0
	for _, date := range dates {
		for _, rec := range set[date] {
			if date == "" || rec.StartTime == nil || rec.EndTime == nil {
				skipped++
				continue
			}
			rec.LogDate = date
			if err := repo.Insert(ctx, cfg.Database.TripID, rec); err != nil {
				return err
			}
			inserted++
		}
	}

	util.LogInfo("Import finished",
		util.F("trip", cfg.Database.TripID),
		util.F("inserted", inserted),
		util.F("skipped", skipped))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into trip %d (%d skipped)\n", inserted, cfg.Database.TripID, skipped)
	return nil
}
