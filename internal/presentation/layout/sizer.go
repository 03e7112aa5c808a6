package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-eld-log/internal/core/constants"
	"github.com/penwyp/go-eld-log/internal/util"
)

// Fallback and bounds for the terminal width
const (
	DefaultWidth = 80
	MinWidth     = 40
	MaxWidth     = 160
)

// Sizer measures text and the terminal it is printed to.
type Sizer struct {
	Width int
}

// NewSizer creates a sizer for a fixed width. Zero or negative widths
// are detected from stdout.
func NewSizer(width int) *Sizer {
	if width <= 0 {
		width = TerminalWidth(int(os.Stdout.Fd()))
	}
	return &Sizer{Width: clamp(width, MinWidth, MaxWidth)}
}

// TerminalWidth returns the width of the terminal on fd, or DefaultWidth
// when fd is not a terminal.
func TerminalWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	util.LogDebugf("Terminal width %d", width)
	return width
}

// DisplayWidth returns the number of cells s occupies.
func (s Sizer) DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to a specific display width.
func (s Sizer) PadString(text string, width int, leftAlign bool) string {
	actual := s.DisplayWidth(text)
	if actual >= width {
		return text
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// CellsPerHour picks the grid resolution that fits hours of timeline plus
// reserved cells of labels into the sizer's width: 4 (15 min), 2 (30 min)
// or 1 cell per hour.
func (s Sizer) CellsPerHour(hours, reserved int) int {
	if hours <= 0 {
		hours = constants.DayHours
	}
	available := s.Width - reserved
	for _, cells := range []int{4, 2} {
		if hours*cells <= available {
			return cells
		}
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
