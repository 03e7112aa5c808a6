package model

import "time"

// Interval kinds that carry meaning for the remarks section
const (
	KindFuel    = "fuel"
	KindRest    = "rest"
	KindPickup  = "pickup"
	KindDropoff = "dropoff"
)

// RawInterval is a duty interval record as delivered by the log backend.
// Every field may be missing or malformed; the normalizer decides what survives.
type RawInterval struct {
	ID              *int64   `json:"id,omitempty"`
	LogDate         string   `json:"log_date,omitempty"`
	StartTime       *string  `json:"start_time,omitempty"`
	EndTime         *string  `json:"end_time,omitempty"`
	Status          string   `json:"status"`
	StatusDisplay   string   `json:"status_display,omitempty"`
	Location        *string  `json:"location,omitempty"`
	OdometerReading *float64 `json:"odometer_reading,omitempty"`
	Type            string   `json:"type,omitempty"`
}

// DailyLogSet maps a calendar date (YYYY-MM-DD) to that day's raw intervals.
type DailyLogSet map[string][]RawInterval

// DutyInterval is a validated interval with a recognized status.
// Start <= End is expected but not guaranteed for caller-supplied data.
type DutyInterval struct {
	Start           time.Time
	End             time.Time
	Status          DutyStatus
	Location        *string
	OdometerReading *float64
	Kind            string
}

// Duration returns the elapsed time of the interval, never negative.
func (i DutyInterval) Duration() time.Duration {
	if i.End.Before(i.Start) {
		return 0
	}
	return i.End.Sub(i.Start)
}

// HasDetails reports whether the interval carries a side note for the grid.
func (i DutyInterval) HasDetails() bool {
	return (i.Location != nil && *i.Location != "") || i.OdometerReading != nil
}
