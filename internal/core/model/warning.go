package model

import (
	"errors"
	"fmt"
)

// Sentinel errors behind normalization warnings
var (
	ErrUnknownStatus      = errors.New("unknown duty status")
	ErrMissingField       = errors.New("missing field")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// WarningKind names the reason an interval was dropped.
type WarningKind string

const (
	WarnUnknownStatus      WarningKind = "UnknownStatus"
	WarnMissingField       WarningKind = "MissingField"
	WarnMalformedTimestamp WarningKind = "MalformedTimestamp"
)

// Warning reports an interval that was dropped during normalization.
// Index is the position of the record in the day's raw list.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Date    string      `json:"date"`
	Index   int         `json:"index"`
	Status  string      `json:"status,omitempty"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

// NewWarning builds a warning from one of the sentinel errors.
func NewWarning(date string, index int, status string, err error) Warning {
	kind := WarnMissingField
	switch {
	case errors.Is(err, ErrUnknownStatus):
		kind = WarnUnknownStatus
	case errors.Is(err, ErrMalformedTimestamp):
		kind = WarnMalformedTimestamp
	}
	return Warning{
		Kind:    kind,
		Date:    date,
		Index:   index,
		Status:  status,
		Message: err.Error(),
		Err:     err,
	}
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s interval #%d dropped: %s", w.Date, w.Index, w.Message)
}

func (w Warning) Unwrap() error {
	return w.Err
}
