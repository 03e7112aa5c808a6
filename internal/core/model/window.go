package model

import (
	"fmt"
	"time"
)

// DateLayout is the layout of DailyLogSet keys.
const DateLayout = "2006-01-02"

// DayWindow is the [Start, End) span of one calendar day in a given location.
type DayWindow struct {
	Date  string
	Start time.Time
	End   time.Time
}

// NewDayWindow builds the window for date (YYYY-MM-DD) in loc.
// DST transitions make the window 23 or 25 hours long.
func NewDayWindow(date string, loc *time.Location) (DayWindow, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return DayWindow{}, fmt.Errorf("invalid log date %q: %w", date, err)
	}
	return DayWindow{
		Date:  date,
		Start: day,
		End:   day.AddDate(0, 0, 1),
	}, nil
}

// Length returns the duration of the window.
func (w DayWindow) Length() time.Duration {
	return w.End.Sub(w.Start)
}

// Hours returns the window length in hours.
func (w DayWindow) Hours() float64 {
	return w.Length().Hours()
}

// FractionOf converts t into a day-fraction clamped to [0, 1].
func (w DayWindow) FractionOf(t time.Time) float64 {
	length := w.Length()
	if length <= 0 {
		return 0
	}
	f := float64(t.Sub(w.Start)) / float64(length)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Contains reports whether t lies in [Start, End).
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
