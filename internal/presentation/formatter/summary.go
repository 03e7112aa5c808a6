package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/data/aggregator"
)

// SummaryFormatter prints a multi-day report with the 70 hour / 8 day recap.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(opts Options) *SummaryFormatter {
	return &SummaryFormatter{w: opts.writer()}
}

func (f *SummaryFormatter) Format(days []model.DayLog) error {
	out := f.w
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Driver's Daily Log Summary")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out)

	if len(days) == 0 {
		fmt.Fprintln(out, "No log days to summarize")
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("=", 60))
		return nil
	}

	first, last := days[0].Date, days[len(days)-1].Date
	if first == last {
		fmt.Fprintf(out, "Date Range: %s\n", first)
	} else {
		fmt.Fprintf(out, "Date Range: %s to %s (%d days)\n", first, last, len(days))
	}
	fmt.Fprintln(out)

	var total model.HourTotals
	totals := make([]aggregator.DayTotals, 0, len(days))
	for _, day := range days {
		total = total.Add(day.Hours)
		totals = append(totals, aggregator.DayTotals{Date: day.Date, Totals: day.Hours})
	}
	sum := total.Format()

	fmt.Fprintln(out, "Hours by Duty Status:")
	for _, status := range model.AllStatuses {
		fmt.Fprintf(out, "  %-26s %8s\n", status.Label()+":", model.FormatHours(total.ForStatus(status)))
	}
	fmt.Fprintf(out, "  %-26s %8s\n", "Total On Duty (3 + 4):", sum.OnDuty)
	fmt.Fprintln(out)

	recaps, err := aggregator.BuildRecaps(totals)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Recap (%.0f hr / %d day):\n", aggregator.CycleHours, aggregator.CycleDays)
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "  %-12s %10s %14s %16s\n", "Date", "On Duty", "Last 8 Days", "Available")
	for _, r := range recaps {
		fmt.Fprintf(out, "  %-12s %10s %14s %16s\n", r.Date,
			model.FormatHours(r.OnDutyToday), model.FormatHours(r.OnDutyCycle), model.FormatHours(r.AvailableTomorrow))
	}
	fmt.Fprintln(out)

	var remarkLines, warningLines []string
	for _, day := range days {
		for _, r := range day.Remarks {
			remarkLines = append(remarkLines, fmt.Sprintf("  %s  %s", day.Date, r.Text))
		}
		for _, w := range day.Warnings {
			warningLines = append(warningLines, "  "+w.Error())
		}
	}

	if len(remarkLines) > 0 {
		fmt.Fprintln(out, "Remarks:")
		fmt.Fprintln(out, strings.Join(remarkLines, "\n"))
		fmt.Fprintln(out)
	}
	if len(warningLines) > 0 {
		fmt.Fprintf(out, "Dropped Intervals (%d):\n", len(warningLines))
		fmt.Fprintln(out, strings.Join(warningLines, "\n"))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("=", 60))
	return nil
}
