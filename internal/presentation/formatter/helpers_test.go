package formatter

import (
	"testing"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/core/remarks"
	"github.com/penwyp/go-eld-log/internal/core/timeline"
	"github.com/penwyp/go-eld-log/internal/data/aggregator"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func rec(status, start, end string) model.RawInterval {
	return model.RawInterval{Status: status, StartTime: strPtr(start), EndTime: strPtr(end)}
}

// buildDay runs the same pipeline the analyzer does, in UTC.
func buildDay(t *testing.T, date string, raw []model.RawInterval) model.DayLog {
	t.Helper()
	window, err := model.NewDayWindow(date, time.UTC)
	require.NoError(t, err)

	intervals, warnings := timeline.Normalize(raw, window)
	hours := aggregator.NewAggregator().AggregateDay(intervals, window)
	path := timeline.NewPathBuilder(window).Build(intervals)

	return model.DayLog{
		Date:        date,
		Totals:      hours.Format(),
		Hours:       hours,
		Path:        path.Segments,
		Annotations: path.Annotations,
		Remarks:     remarks.Collect(intervals, nil),
		Warnings:    warnings,
		Intervals:   intervals,
		Window:      window,
	}
}

func sampleDays(t *testing.T) []model.DayLog {
	t.Helper()
	fuel := rec("ON_DUTY_NOT_DRIVING", "2025-06-10T14:00:00Z", "2025-06-10T14:30:00Z")
	fuel.Type = "fuel"
	fuel.Location = strPtr("Amarillo, TX")
	odo := 125340.0
	fuel.OdometerReading = &odo

	return []model.DayLog{
		buildDay(t, "2025-06-10", []model.RawInterval{
			rec("OFF_DUTY", "2025-06-10T00:00:00Z", "2025-06-10T08:00:00Z"),
			rec("DRIVING", "2025-06-10T08:00:00Z", "2025-06-10T14:00:00Z"),
			fuel,
			rec("DRIVING", "2025-06-10T14:30:00Z", "2025-06-10T18:00:00Z"),
			rec("SLEEPER_BERTH", "2025-06-10T18:00:00Z", "2025-06-11T00:00:00Z"),
			rec("UNKNOWN_CODE", "2025-06-10T01:00:00Z", "2025-06-10T02:00:00Z"),
		}),
		buildDay(t, "2025-06-11", nil),
	}
}
