package model

import "fmt"

// DutyStatus is one of the four regulatory duty categories.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDutyNotDriving
)

// Wire codes used by the log retrieval backend
const (
	StatusCodeOffDuty          = "OFF_DUTY"
	StatusCodeSleeperBerth     = "SLEEPER_BERTH"
	StatusCodeDriving          = "DRIVING"
	StatusCodeOnDutyNotDriving = "ON_DUTY_NOT_DRIVING"
)

// AllStatuses lists every duty status in row order.
var AllStatuses = []DutyStatus{OffDuty, SleeperBerth, Driving, OnDutyNotDriving}

// RowCount is the number of rows on the duty status grid.
const RowCount = 4

// ParseDutyStatus maps a wire code to a DutyStatus.
func ParseDutyStatus(code string) (DutyStatus, error) {
	switch code {
	case StatusCodeOffDuty:
		return OffDuty, nil
	case StatusCodeSleeperBerth:
		return SleeperBerth, nil
	case StatusCodeDriving:
		return Driving, nil
	case StatusCodeOnDutyNotDriving:
		return OnDutyNotDriving, nil
	default:
		return OffDuty, fmt.Errorf("%w: %q", ErrUnknownStatus, code)
	}
}

// Row returns the grid row index of the status, 0 (top) through 3.
func (s DutyStatus) Row() int {
	return int(s)
}

// Code returns the wire code of the status.
func (s DutyStatus) Code() string {
	switch s {
	case SleeperBerth:
		return StatusCodeSleeperBerth
	case Driving:
		return StatusCodeDriving
	case OnDutyNotDriving:
		return StatusCodeOnDutyNotDriving
	default:
		return StatusCodeOffDuty
	}
}

// Label returns the label printed next to the status row on the paper form.
func (s DutyStatus) Label() string {
	switch s {
	case SleeperBerth:
		return "2. Sleeper Berth"
	case Driving:
		return "3. Driving"
	case OnDutyNotDriving:
		return "4. On Duty (not driving)"
	default:
		return "1. Off Duty (not driving)"
	}
}

// ShortLabel is the compact row label used by terminal output.
func (s DutyStatus) ShortLabel() string {
	switch s {
	case SleeperBerth:
		return "SLEEPER"
	case Driving:
		return "DRIVING"
	case OnDutyNotDriving:
		return "ON DUTY"
	default:
		return "OFF DUTY"
	}
}

func (s DutyStatus) String() string {
	return s.Code()
}

// IsOnDuty reports whether time in this status counts toward on-duty hours.
func (s DutyStatus) IsOnDuty() bool {
	return s == Driving || s == OnDutyNotDriving
}
