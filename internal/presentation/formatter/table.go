package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{
		w: opts.writer(),
		headers: []string{
			"Date", "Driving", "On Duty (ND)", "On Duty",
			"Sleeper", "Off Duty", "Remarks", "Warnings",
		},
	}
}

// Format prints one row of totals per day and a grand total.
func (f *TableFormatter) Format(days []model.DayLog) error {
	var total model.HourTotals
	rows := make([][]string, 0, len(days)+1)
	remarkCount, warningCount := 0, 0

	for _, day := range days {
		rows = append(rows, []string{
			day.Date,
			day.Totals.Driving,
			day.Totals.OnDutyNotDriving,
			day.Totals.OnDuty,
			day.Totals.SleeperBerth,
			day.Totals.OffDuty,
			fmt.Sprintf("%d", len(day.Remarks)),
			fmt.Sprintf("%d", len(day.Warnings)),
		})
		total = total.Add(day.Hours)
		remarkCount += len(day.Remarks)
		warningCount += len(day.Warnings)
	}

	sum := total.Format()
	totalRow := []string{
		"Total",
		sum.Driving,
		sum.OnDutyNotDriving,
		sum.OnDuty,
		sum.SleeperBerth,
		sum.OffDuty,
		fmt.Sprintf("%d", remarkCount),
		fmt.Sprintf("%d", warningCount),
	}

	widths := f.calculateColumnWidths(append(rows, totalRow))

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(totalRow, widths)
	f.printBorder(widths, "bottom")
	return nil
}

func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	if widths[0] < len(model.DateLayout) {
		widths[0] = len(model.DateLayout)
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("─", width+2)
	}
	fmt.Fprintln(f.w, left+strings.Join(parts, middle)+right)
}

// printRow prints a row with the date column left-aligned and the numeric
// columns right-aligned.
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		if i == 0 {
			b.WriteString(" " + util.PadRight(value, widths[i]) + " │")
		} else {
			b.WriteString(" " + util.PadLeft(value, widths[i]) + " │")
		}
	}
	fmt.Fprintln(f.w, b.String())
}
