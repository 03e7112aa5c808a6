package model

import "fmt"

// HourTotals holds full-precision hour sums per duty category.
type HourTotals struct {
	Driving          float64 `json:"driving"`
	OnDutyNotDriving float64 `json:"onDutyNotDriving"`
	OnDuty           float64 `json:"onDuty"`
	SleeperBerth     float64 `json:"sleeperBerth"`
	OffDuty          float64 `json:"offDuty"`
}

// DurationTotals is the per-day totals column as printed on the log sheet:
// every value is an hour count with two decimals.
type DurationTotals struct {
	Driving          string `json:"driving"`
	OnDutyNotDriving string `json:"onDutyNotDriving"`
	OnDuty           string `json:"onDuty"`
	SleeperBerth     string `json:"sleeperBerth"`
	OffDuty          string `json:"offDuty"`
}

// FormatHours renders an hour count with two decimals.
func FormatHours(h float64) string {
	if h < 0 {
		h = 0
	}
	return fmt.Sprintf("%.2f", h)
}

// Format rounds the totals to two decimals.
func (t HourTotals) Format() DurationTotals {
	return DurationTotals{
		Driving:          FormatHours(t.Driving),
		OnDutyNotDriving: FormatHours(t.OnDutyNotDriving),
		OnDuty:           FormatHours(t.OnDuty),
		SleeperBerth:     FormatHours(t.SleeperBerth),
		OffDuty:          FormatHours(t.OffDuty),
	}
}

// ForStatus returns the bucket a status row reports in the totals column.
func (t HourTotals) ForStatus(s DutyStatus) float64 {
	switch s {
	case SleeperBerth:
		return t.SleeperBerth
	case Driving:
		return t.Driving
	case OnDutyNotDriving:
		return t.OnDutyNotDriving
	default:
		return t.OffDuty
	}
}

// Add sums two totals, used for multi-day recaps.
func (t HourTotals) Add(o HourTotals) HourTotals {
	return HourTotals{
		Driving:          t.Driving + o.Driving,
		OnDutyNotDriving: t.OnDutyNotDriving + o.OnDutyNotDriving,
		OnDuty:           t.OnDuty + o.OnDuty,
		SleeperBerth:     t.SleeperBerth + o.SleeperBerth,
		OffDuty:          t.OffDuty + o.OffDuty,
	}
}
