package timeline

import (
	"github.com/penwyp/go-eld-log/internal/core/model"
)

// DefaultStatus is the status assumed for time before the first interval.
const DefaultStatus = model.OffDuty

// Path is the drawable form of one day: the duty status line plus the
// side notes that hang off it.
type Path struct {
	Segments    []model.Segment
	Annotations []model.Annotation
}

// PathBuilder folds a normalized interval list into a step-function path
// spanning the whole day window.
type PathBuilder struct {
	window model.DayWindow
}

// NewPathBuilder creates a builder for the given day.
func NewPathBuilder(window model.DayWindow) *PathBuilder {
	return &PathBuilder{window: window}
}

// pathState is the accumulator carried across the fold.
type pathState struct {
	segments    []model.Segment
	annotations []model.Annotation
	cursorX     float64
	cursorRow   model.DutyStatus
}

// Build converts intervals (already normalized and sorted) into a path.
// The cursor never moves backward: an interval starting before the
// previous one ended is drawn from where the line already is, and uncovered
// time keeps the last status drawn.
func (b *PathBuilder) Build(intervals []model.DutyInterval) Path {
	state := pathState{
		segments:  make([]model.Segment, 0, len(intervals)*2+1),
		cursorX:   0,
		cursorRow: DefaultStatus,
	}

	for _, interval := range intervals {
		state = b.step(state, interval)
	}

	if state.cursorX < 1 {
		state.addHorizontal(state.cursorRow, state.cursorX, 1)
	}

	return Path{
		Segments:    state.segments,
		Annotations: state.annotations,
	}
}

func (b *PathBuilder) step(state pathState, interval model.DutyInterval) pathState {
	x1 := max(state.cursorX, b.window.FractionOf(interval.Start))
	x2 := b.window.FractionOf(interval.End)

	if x1 > state.cursorX {
		state.addHorizontal(state.cursorRow, state.cursorX, x1)
	}

	if interval.Status != state.cursorRow {
		state.segments = append(state.segments, model.Vertical(x1, state.cursorRow, interval.Status))
	}

	if x2 > x1 {
		state.addHorizontal(interval.Status, x1, x2)
	}

	if interval.HasDetails() {
		state.annotations = append(state.annotations, model.Annotation{
			X:               x1,
			Row:             interval.Status,
			Location:        interval.Location,
			OdometerReading: interval.OdometerReading,
		})
	}

	// x1 already covers any gap that was filled above; only a reversed
	// interval can have x2 < x1.
	state.cursorX = max(x1, x2)
	state.cursorRow = interval.Status
	return state
}

// addHorizontal appends a horizontal segment, merging it into the previous
// one when the line did not change row in between.
func (s *pathState) addHorizontal(row model.DutyStatus, xStart, xEnd float64) {
	if n := len(s.segments); n > 0 {
		last := &s.segments[n-1]
		if last.IsHorizontal() && last.Row == row {
			last.XEnd = xEnd
			return
		}
	}
	s.segments = append(s.segments, model.Horizontal(row, xStart, xEnd))
}

// HorizontalCoverage sums the day-fraction covered by horizontal segments.
func HorizontalCoverage(segments []model.Segment) float64 {
	var total float64
	for _, seg := range segments {
		total += seg.Length()
	}
	return total
}
