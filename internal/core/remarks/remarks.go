package remarks

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// DefaultKinds are the interval kinds that appear in the remarks section.
var DefaultKinds = []string{model.KindFuel, model.KindRest}

// Collect projects the day's intervals onto remark lines, keeping input
// order. Only intervals whose kind is listed are reported; nil kinds means
// DefaultKinds.
func Collect(intervals []model.DutyInterval, kinds []string) []model.Remark {
	if kinds == nil {
		kinds = DefaultKinds
	}
	wanted := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		wanted[strings.ToLower(k)] = true
	}

	result := make([]model.Remark, 0)
	for _, interval := range intervals {
		if !wanted[interval.Kind] {
			continue
		}

		location := ""
		if interval.Location != nil {
			location = *interval.Location
		}
		result = append(result, model.Remark{
			Kind:     interval.Kind,
			Start:    interval.Start,
			Location: location,
			Text:     Format(interval.Kind, interval.Start.Format("15:04"), location),
		})
	}
	return result
}

// Format renders a single remark line, e.g. "FUEL at 14:05: Amarillo, TX".
func Format(kind, clock, location string) string {
	return fmt.Sprintf("%s at %s: %s", strings.ToUpper(kind), clock, location)
}
