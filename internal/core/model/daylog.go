package model

import "time"

// Remark is a line of the remarks section (fuel stops, rest breaks).
type Remark struct {
	Kind     string    `json:"kind"`
	Start    time.Time `json:"start"`
	Location string    `json:"location,omitempty"`
	Text     string    `json:"text"`
}

// DayLog is everything the rendering layer needs for one log sheet.
type DayLog struct {
	Date        string         `json:"date"`
	Totals      DurationTotals `json:"totals"`
	Hours       HourTotals     `json:"-"`
	Path        []Segment      `json:"path"`
	Annotations []Annotation   `json:"annotations"`
	Remarks     []Remark       `json:"remarks"`
	Warnings    []Warning      `json:"warnings,omitempty"`
	Intervals   []DutyInterval `json:"-"`
	Window      DayWindow      `json:"-"`
}
