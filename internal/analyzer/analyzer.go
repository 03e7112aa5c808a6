package analyzer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/data/aggregator"
	"github.com/penwyp/go-eld-log/internal/data/store"
	"github.com/penwyp/go-eld-log/internal/presentation/formatter"
	"github.com/penwyp/go-eld-log/internal/util"
)

// ErrNoDays is returned when the filter leaves nothing to render.
var ErrNoDays = errors.New("no log days match the selection")

type Config struct {
	DataDir      string
	DSN          string
	TripID       int64
	OutputFormat string
	Timezone     string
	Concurrency  int
	// Date selection
	Dates    []string
	From     string
	To       string
	Duration string
	// StrictTotals leaves uncovered time out of the off duty total.
	StrictTotals bool
	RemarkKinds  []string
	// Rendering
	Width  int
	Color  bool
	Output io.Writer
}

// Filter returns the date selection of the config.
func (c *Config) Filter() DateFilter {
	return DateFilter{Dates: c.Dates, From: c.From, To: c.To, Duration: c.Duration}
}

type Analyzer struct {
	config    *Config
	source    Source
	processor *DayProcessor
	db        *sql.DB
}

// New builds an analyzer reading from the database when DSN is set and
// from DataDir otherwise.
func New(ctx context.Context, config *Config) (*Analyzer, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}
	loc, err := resolveLocation(config.Timezone)
	if err != nil {
		return nil, err
	}

	if config.DSN == "" {
		if config.DataDir == "" {
			return nil, fmt.Errorf("either a data directory or a database dsn is required")
		}
		return NewWithSource(config, NewFileSource(config.DataDir, config.Concurrency, loc))
	}

	db, driver, err := store.Open(ctx, config.DSN)
	if err != nil {
		return nil, err
	}
	util.LogDebug("Connected to log database", util.F("driver", driver), util.F("trip", config.TripID))

	a, err := NewWithSource(config, NewSQLSource(store.NewLogEntryRepo(db, driver), config.TripID))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

// NewWithSource builds an analyzer over an already constructed source.
func NewWithSource(config *Config, source Source) (*Analyzer, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if config.OutputFormat != "" && !formatter.IsSupported(config.OutputFormat) {
		return nil, fmt.Errorf("unsupported output format %q (supported: %v)", config.OutputFormat, formatter.Supported)
	}
	if err := config.Filter().Validate(); err != nil {
		return nil, err
	}
	loc, err := resolveLocation(config.Timezone)
	if err != nil {
		return nil, err
	}

	agg := aggregator.NewAggregator()
	if config.StrictTotals {
		agg = aggregator.NewStrictAggregator()
	}

	return &Analyzer{
		config:    config,
		source:    source,
		processor: NewDayProcessor(loc, agg, config.RemarkKinds),
	}, nil
}

func resolveLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return util.GetTimeProvider().Location(), nil
	}
	return util.LoadTimezone(timezone)
}

// Source returns where the analyzer reads records from.
func (a *Analyzer) Source() Source {
	return a.source
}

// Close releases the database connection, if any.
func (a *Analyzer) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Ping checks the database connection. File sources always succeed.
func (a *Analyzer) Ping(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

// Run loads, computes and renders the selected days.
func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()
	util.LogInfo("Building driver daily logs", util.F("source", a.source.Describe()))

	days, err := a.Compute(ctx)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return ErrNoDays
	}

	outputStart := time.Now()
	err = formatter.New(a.config.OutputFormat, formatter.Options{
		Writer: a.config.Output,
		Width:  a.config.Width,
		Color:  a.config.Color,
		Now:    util.GetTimeProvider().Now,
	}).Format(days)
	util.LogDebugf("Formatting and output duration: %v", time.Since(outputStart))
	util.LogDebugf("Total duration: %v", time.Since(startTime))
	return err
}

// Compute loads the source and returns the filtered day logs in date
// order. Dropped intervals are logged as warnings and kept on each day.
func (a *Analyzer) Compute(ctx context.Context) ([]model.DayLog, error) {
	loadStart := time.Now()
	set, err := a.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("Phase 1 - Load duration: %v, %d days", time.Since(loadStart), len(set))

	filterStart := time.Now()
	dates := a.config.Filter().Apply(set, util.GetTimeProvider().Now())
	util.LogDebugf("Phase 2 - Date filtering duration: %v, %d days selected", time.Since(filterStart), len(dates))

	computeStart := time.Now()
	days, err := a.processor.ComputeAll(ctx, set, dates, a.config.Concurrency)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("Phase 3 - Day processing duration: %v", time.Since(computeStart))

	for _, day := range days {
		for _, w := range day.Warnings {
			util.LogWarn("Dropped interval",
				util.F("date", w.Date),
				util.F("index", w.Index),
				util.F("kind", string(w.Kind)),
				util.F("reason", w.Message))
		}
	}
	return days, nil
}

// Dates lists every date the source has records for, ignoring the filter.
func (a *Analyzer) Dates(ctx context.Context) ([]string, error) {
	set, err := a.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	dates := DateFilter{}.Apply(set, time.Time{})
	valid := dates[:0]
	for _, d := range dates {
		if d != "" {
			valid = append(valid, d)
		}
	}
	return valid, nil
}

// Day computes a single date. A date without records yields an empty day.
func (a *Analyzer) Day(ctx context.Context, date string) (model.DayLog, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.DayLog{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	set, err := a.source.Load(ctx)
	if err != nil {
		return model.DayLog{}, err
	}
	return a.processor.Compute(date, set[date])
}
