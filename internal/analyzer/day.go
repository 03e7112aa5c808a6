package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/remarks"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/data/aggregator"
	"github.com/penwyp/go-eld-log/internal/util"
)

// DayProcessor turns one day's raw intervals into a DayLog. It holds no
// mutable state and is safe for concurrent use.
type DayProcessor struct {
	location    *time.Location
	aggregator  *aggregator.Aggregator
	remarkKinds []string
}

func NewDayProcessor(loc *time.Location, agg *aggregator.Aggregator, remarkKinds []string) *DayProcessor {
	if loc == nil {
		loc = time.Local
	}
	if agg == nil {
		agg = aggregator.NewAggregator()
	}
	return &DayProcessor{
		location:    loc,
		aggregator:  agg,
		remarkKinds: remarkKinds,
	}
}

// Location returns the timezone day windows are built in.
func (p *DayProcessor) Location() *time.Location {
	return p.location
}

// Compute normalizes the records, then aggregates and builds the path from
// the same normalized list. Only an invalid date is an error; bad records
// become warnings.
func (p *DayProcessor) Compute(date string, raw []model.RawInterval) (model.DayLog, error) {
	window, err := model.NewDayWindow(date, p.location)
	if err != nil {
		return model.DayLog{}, err
	}

	intervals, warnings := timeline.Normalize(raw, window)
	hours := p.aggregator.AggregateDay(intervals, window)
	path := timeline.NewPathBuilder(window).Build(intervals)

	annotations := path.Annotations
	if annotations == nil {
		annotations = []model.Annotation{}
	}

	return model.DayLog{
		Date:        date,
		Totals:      hours.Format(),
		Hours:       hours,
		Path:        path.Segments,
		Annotations: annotations,
		Remarks:     remarks.Collect(intervals, p.remarkKinds),
		Warnings:    warnings,
		Intervals:   intervals,
		Window:      window,
	}, nil
}

// ComputeAll processes every date concurrently and returns the logs sorted
// by date. Dates that fail are logged and left out.
func (p *DayProcessor) ComputeAll(ctx context.Context, set model.DailyLogSet, dates []string, concurrency int) ([]model.DayLog, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	type dayResult struct {
		index int
		log   model.DayLog
		err   error
	}

	results := make(chan dayResult, len(dates))
	semaphore := make(chan struct{}, concurrency)

	for i, date := range dates {
		go func(idx int, d string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				results <- dayResult{index: idx, err: err}
				return
			}
			log, err := p.Compute(d, set[d])
			results <- dayResult{index: idx, log: log, err: err}
		}(i, date)
	}

	ordered := make([]*model.DayLog, len(dates))
	for range dates {
		r := <-results
		if r.err != nil {
			if ctx.Err() != nil {
				continue
			}
			util.LogWarn("Skipping day", util.F("date", dates[r.index]), util.F("error", r.err.Error()))
			continue
		}
		log := r.log
		ordered[r.index] = &log
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("day processing cancelled: %w", err)
	}

	days := make([]model.DayLog, 0, len(dates))
	for _, log := range ordered {
		if log != nil {
			days = append(days, *log)
		}
	}
	return days, nil
}
