package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/constants"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/util"
)

// Recap window for the 70 hour / 8 day column of the form.
const (
	CycleDays  = constants.RecapCycleDays
	CycleHours = constants.RecapCycleHours
)

// Aggregator sums elapsed time per duty category.
type Aggregator struct {
	creditUncovered bool
}

// NewAggregator creates an aggregator that credits uncovered time of a
// non-empty day to off duty, matching how the line is drawn before the
// first interval.
func NewAggregator() *Aggregator {
	return &Aggregator{creditUncovered: true}
}

// NewStrictAggregator creates an aggregator that only counts recorded
// intervals.
func NewStrictAggregator() *Aggregator {
	return &Aggregator{creditUncovered: false}
}

// Aggregate sums interval durations per status. Overlapping intervals are
// each counted in full, so totals can exceed the day length.
func (a *Aggregator) Aggregate(intervals []model.DutyInterval) model.HourTotals {
	var totals model.HourTotals
	for _, interval := range intervals {
		hours := interval.Duration().Hours()

		switch interval.Status {
		case model.Driving:
			totals.Driving += hours
			totals.OnDuty += hours
		case model.OnDutyNotDriving:
			totals.OnDutyNotDriving += hours
			totals.OnDuty += hours
		case model.SleeperBerth:
			totals.SleeperBerth += hours
		case model.OffDuty:
			totals.OffDuty += hours
		}
	}
	return totals
}

// AggregateDay sums a day's intervals and, when enabled, adds the time no
// interval covers to off duty. An empty day stays all zero.
func (a *Aggregator) AggregateDay(intervals []model.DutyInterval, window model.DayWindow) model.HourTotals {
	totals := a.Aggregate(intervals)
	if !a.creditUncovered || len(intervals) == 0 {
		return totals
	}

	uncovered := window.Length() - Coverage(intervals)
	if uncovered > 0 {
		totals.OffDuty += uncovered.Hours()
		util.LogDebugf("Credited %.4fh uncovered time to off duty on %s", uncovered.Hours(), window.Date)
	}
	return totals
}

// Coverage returns the length of the union of the intervals.
func Coverage(intervals []model.DutyInterval) time.Duration {
	if len(intervals) == 0 {
		return 0
	}

	sorted := make([]model.DutyInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var covered time.Duration
	runStart, runEnd := sorted[0].Start, sorted[0].End
	for _, interval := range sorted[1:] {
		if interval.Start.After(runEnd) {
			covered += nonNegative(runEnd.Sub(runStart))
			runStart, runEnd = interval.Start, interval.End
			continue
		}
		if interval.End.After(runEnd) {
			runEnd = interval.End
		}
	}
	covered += nonNegative(runEnd.Sub(runStart))
	return covered
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// DayTotals pairs a date with its totals for recap calculations.
type DayTotals struct {
	Date   string
	Totals model.HourTotals
}

// Recap holds the end-of-day recap figures printed under the grid.
type Recap struct {
	Date              string  `json:"date"`
	OnDutyToday       float64 `json:"onDutyToday"`
	OnDutyCycle       float64 `json:"onDutyCycle"`
	AvailableTomorrow float64 `json:"availableTomorrow"`
	CycleDays         int     `json:"cycleDays"`
}

// BuildRecaps computes, for every day, on-duty hours today and over the
// trailing cycle window including today. Days are matched by calendar date
// so missing days count as zero.
func BuildRecaps(days []DayTotals) ([]Recap, error) {
	byDate := make(map[string]float64, len(days))
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(model.DateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid recap date %q: %w", d.Date, err)
		}
		byDate[d.Date] += d.Totals.OnDuty
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	recaps := make([]Recap, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, day := range dates {
		key := day.Format(model.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true

		var cycle float64
		for back := 0; back < CycleDays; back++ {
			cycle += byDate[day.AddDate(0, 0, -back).Format(model.DateLayout)]
		}

		available := CycleHours - cycle
		if available < 0 {
			available = 0
		}
		recaps = append(recaps, Recap{
			Date:              key,
			OnDutyToday:       byDate[key],
			OnDutyCycle:       cycle,
			AvailableTomorrow: available,
			CycleDays:         CycleDays,
		})
	}
	return recaps, nil
}
