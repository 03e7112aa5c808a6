package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatDuration renders d as "2h 15m" or "45m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock converts a day-fraction into a wall clock "HH:MM" on a day
// of dayHours hours. 1.0 renders as the end of day, e.g. "24:00".
func FormatClock(fraction, dayHours float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	total := int(math.Round(fraction * dayHours * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatMiles renders an odometer reading with thousands separators and
// no decimals, e.g. "125,341".
func FormatMiles(miles float64) string {
	intPart := fmt.Sprintf("%.0f", math.Abs(miles))

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	if miles < 0 && intPart != "0" {
		return "-" + intPart
	}
	return intPart
}

// Truncate shortens s to at most width display cells, adding "..." when cut.
func Truncate(s string, width int) string {
	if GetDisplayWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return TruncateWidth(s, width)
	}
	return TruncateWidth(s, width-3) + "..."
}
