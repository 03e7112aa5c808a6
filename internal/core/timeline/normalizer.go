package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Layouts accepted for interval timestamps, tried in order. Layouts without
// a zone are interpreted in the day window's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp, falling back to loc when
// the value carries no zone offset.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", model.ErrMalformedTimestamp, value)
}

// Normalize turns one day's raw records into a sorted, clipped list of
// intervals with recognized statuses. Dropped records are reported as
// warnings; nothing here is fatal.
func Normalize(raw []model.RawInterval, window model.DayWindow) ([]model.DutyInterval, []model.Warning) {
	loc := window.Start.Location()
	intervals := make([]model.DutyInterval, 0, len(raw))
	var warnings []model.Warning

	for idx, rec := range raw {
		interval, err := toInterval(rec, loc)
		if err != nil {
			warnings = append(warnings, model.NewWarning(window.Date, idx, rec.Status, err))
			continue
		}

		clipped, ok := clip(interval, window)
		if !ok {
			continue
		}
		intervals = append(intervals, clipped)
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, warnings
}

func toInterval(rec model.RawInterval, loc *time.Location) (model.DutyInterval, error) {
	status, err := model.ParseDutyStatus(rec.Status)
	if err != nil {
		return model.DutyInterval{}, err
	}
	if rec.StartTime == nil || strings.TrimSpace(*rec.StartTime) == "" {
		return model.DutyInterval{}, fmt.Errorf("%w: start_time", model.ErrMissingField)
	}
	if rec.EndTime == nil || strings.TrimSpace(*rec.EndTime) == "" {
		return model.DutyInterval{}, fmt.Errorf("%w: end_time", model.ErrMissingField)
	}

	start, err := ParseTimestamp(*rec.StartTime, loc)
	if err != nil {
		return model.DutyInterval{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseTimestamp(*rec.EndTime, loc)
	if err != nil {
		return model.DutyInterval{}, fmt.Errorf("end_time: %w", err)
	}

	return model.DutyInterval{
		Start:           start.In(loc),
		End:             end.In(loc),
		Status:          status,
		Location:        rec.Location,
		OdometerReading: rec.OdometerReading,
		Kind:            strings.ToLower(strings.TrimSpace(rec.Type)),
	}, nil
}

// clip restricts an interval to the window. Intervals with no overlap are
// rejected; zero-length and reversed intervals survive only when they start
// inside the window.
func clip(interval model.DutyInterval, window model.DayWindow) (model.DutyInterval, bool) {
	if !interval.Start.Before(window.End) {
		return interval, false
	}
	if !interval.End.After(window.Start) {
		if interval.End.After(interval.Start) || !window.Contains(interval.Start) {
			return interval, false
		}
	}

	if interval.Start.Before(window.Start) {
		interval.Start = window.Start
	}
	if interval.End.After(window.End) {
		interval.End = window.End
	}
	return interval, true
}
