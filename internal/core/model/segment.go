package model

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// SegmentType distinguishes the two strokes of the duty status line.
type SegmentType string

const (
	SegmentHorizontal SegmentType = "horizontal"
	SegmentVertical   SegmentType = "vertical"
)

// Segment is one stroke of the step-function timeline. Horizontal segments
// use Row, XStart and XEnd; vertical segments use X, RowFrom and RowTo.
// All x values are day-fractions in [0, 1].
type Segment struct {
	Type    SegmentType
	Row     DutyStatus
	XStart  float64
	XEnd    float64
	X       float64
	RowFrom DutyStatus
	RowTo   DutyStatus
}

// Horizontal holds status row from xStart to xEnd.
func Horizontal(row DutyStatus, xStart, xEnd float64) Segment {
	return Segment{Type: SegmentHorizontal, Row: row, XStart: xStart, XEnd: xEnd}
}

// Vertical moves the line from one status row to another at x.
func Vertical(x float64, from, to DutyStatus) Segment {
	return Segment{Type: SegmentVertical, X: x, RowFrom: from, RowTo: to}
}

// IsHorizontal reports whether the segment holds a status.
func (s Segment) IsHorizontal() bool {
	return s.Type == SegmentHorizontal
}

// Length returns the day-fraction covered by a horizontal segment.
func (s Segment) Length() float64 {
	if !s.IsHorizontal() {
		return 0
	}
	return s.XEnd - s.XStart
}

func (s Segment) String() string {
	if s.IsHorizontal() {
		return fmt.Sprintf("H{%s %.6f..%.6f}", s.Row, s.XStart, s.XEnd)
	}
	return fmt.Sprintf("V{%.6f %s->%s}", s.X, s.RowFrom, s.RowTo)
}

type segmentWire struct {
	Type    SegmentType `json:"type"`
	Row     *int        `json:"row,omitempty"`
	XStart  *float64    `json:"xStart,omitempty"`
	XEnd    *float64    `json:"xEnd,omitempty"`
	X       *float64    `json:"x,omitempty"`
	RowFrom *int        `json:"rowFrom,omitempty"`
	RowTo   *int        `json:"rowTo,omitempty"`
}

// MarshalJSON emits only the fields that belong to the segment's type.
func (s Segment) MarshalJSON() ([]byte, error) {
	w := segmentWire{Type: s.Type}
	if s.IsHorizontal() {
		row := s.Row.Row()
		w.Row, w.XStart, w.XEnd = &row, &s.XStart, &s.XEnd
	} else {
		from, to := s.RowFrom.Row(), s.RowTo.Row()
		w.X, w.RowFrom, w.RowTo = &s.X, &from, &to
	}
	return sonic.Marshal(w)
}

// UnmarshalJSON accepts the shape produced by MarshalJSON.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var w segmentWire
	if err := sonic.Unmarshal(data, &w); err != nil {
		return err
	}
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	row := func(p *int) DutyStatus {
		if p == nil {
			return OffDuty
		}
		return DutyStatus(*p)
	}

	switch w.Type {
	case SegmentHorizontal:
		*s = Horizontal(row(w.Row), deref(w.XStart), deref(w.XEnd))
	case SegmentVertical:
		*s = Vertical(deref(w.X), row(w.RowFrom), row(w.RowTo))
	default:
		return fmt.Errorf("unknown segment type %q", w.Type)
	}
	return nil
}

// Annotation places a side note (location, odometer) on the grid.
type Annotation struct {
	X               float64    `json:"x"`
	Row             DutyStatus `json:"row"`
	Location        *string    `json:"location,omitempty"`
	OdometerReading *float64   `json:"odometerReading,omitempty"`
}
