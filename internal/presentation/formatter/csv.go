package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(opts Options) *CSVFormatter {
	return &CSVFormatter{w: opts.writer()}
}

func (f *CSVFormatter) Format(days []model.DayLog) error {
	w := csv.NewWriter(f.w)

	headers := []string{
		"Date", "Driving", "On Duty Not Driving", "On Duty",
		"Sleeper Berth", "Off Duty", "Remarks", "Warnings",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, day := range days {
		texts := make([]string, 0, len(day.Remarks))
		for _, r := range day.Remarks {
			texts = append(texts, r.Text)
		}

		record := []string{
			day.Date,
			day.Totals.Driving,
			day.Totals.OnDutyNotDriving,
			day.Totals.OnDuty,
			day.Totals.SleeperBerth,
			day.Totals.OffDuty,
			strings.Join(texts, "; "),
			strconv.Itoa(len(day.Warnings)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
