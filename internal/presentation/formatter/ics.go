package formatter

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/util"
)

// ProductID identifies calendars produced by this tool.
const ProductID = "-//go-eld-log//Driver Daily Log//EN"

// ICSFormatter exports each normalized interval as a calendar event.
type ICSFormatter struct {
	opts Options
}

func NewICSFormatter(opts Options) *ICSFormatter {
	return &ICSFormatter{opts: opts}
}

func (f *ICSFormatter) Format(days []model.DayLog) error {
	return ical.NewEncoder(f.opts.writer()).Encode(BuildCalendar(days, f.opts.now()))
}

// BuildCalendar converts day logs into a VCALENDAR. Zero-length and
// reversed intervals are skipped since they have no extent to show.
func BuildCalendar(days []model.DayLog, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, day := range days {
		remarkByStart := make(map[int64]string, len(day.Remarks))
		for _, r := range day.Remarks {
			remarkByStart[r.Start.UnixNano()] = r.Text
		}

		for i, interval := range day.Intervals {
			if interval.Duration() <= 0 {
				continue
			}

			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@go-eld-log", day.Date, i))
			event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
			event.Props.SetDateTime(ical.PropDateTimeStart, interval.Start.UTC())
			event.Props.SetDateTime(ical.PropDateTimeEnd, interval.End.UTC())
			event.Props.SetText(ical.PropSummary, eventSummary(interval.Status))
			if interval.Location != nil && *interval.Location != "" {
				event.Props.SetText(ical.PropLocation, *interval.Location)
			}

			var notes []string
			if text, ok := remarkByStart[interval.Start.UnixNano()]; ok {
				notes = append(notes, text)
			}
			if interval.OdometerReading != nil {
				notes = append(notes, "Odometer: "+util.FormatMiles(*interval.OdometerReading))
			}
			notes = append(notes, "Duration: "+util.FormatDuration(interval.Duration()))
			event.Props.SetText(ical.PropDescription, strings.Join(notes, "\n"))

			cal.Children = append(cal.Children, event.Component)
		}
	}
	return cal
}

func eventSummary(s model.DutyStatus) string {
	label := s.Label()
	if idx := strings.Index(label, ". "); idx >= 0 {
		label = label[idx+2:]
	}
	return label
}
