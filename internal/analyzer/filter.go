package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// DateFilter selects which days of a log set are rendered. An empty filter
// keeps every day.
type DateFilter struct {
	Dates    []string
	From     string
	To       string
	Duration string
}

var durationPattern = regexp.MustCompile(`(\d+)([dwmy])`)

// Validate checks the filter's date formats.
func (f DateFilter) Validate() error {
	for _, d := range append(append([]string{}, f.Dates...), f.From, f.To) {
		if d == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return fmt.Errorf("--from %s is after --to %s", f.From, f.To)
	}
	if f.Duration != "" {
		if _, err := parseDuration(f.Duration); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns the selected dates of set in ascending order. now anchors
// the Duration window.
func (f DateFilter) Apply(set model.DailyLogSet, now time.Time) []string {
	wanted := make(map[string]bool, len(f.Dates))
	for _, d := range f.Dates {
		wanted[d] = true
	}

	from := f.From
	if f.Duration != "" {
		if days, err := parseDuration(f.Duration); err == nil {
			since := now.AddDate(0, 0, -days+1).Format(model.DateLayout)
			if since > from {
				from = since
			}
		}
	}

	dates := make([]string, 0, len(set))
	for date := range set {
		if len(wanted) > 0 && !wanted[date] {
			continue
		}
		if from != "" && date < from {
			continue
		}
		if f.To != "" && date > f.To {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// parseDuration converts "7d", "2w", "1m" into a day count including
// today. Months count as 30 days, years as 365.
func parseDuration(s string) (int, error) {
	matches := durationPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	total := 0
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, fmt.Errorf("invalid number in duration: %s", match[1])
		}
		switch match[2] {
		case "d":
			total += value
		case "w":
			total += value * 7
		case "m":
			total += value * 30
		case "y":
			total += value * 365
		}
	}
	if total < 1 {
		return 0, fmt.Errorf("duration must cover at least one day: %s", s)
	}
	return total, nil
}
