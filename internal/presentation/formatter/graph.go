package formatter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/constants"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/presentation/layout"
	"github.com/penwyp/go-eld-log/internal/util"
)

const (
	graphLabelWidth  = 10
	graphTotalsWidth = 8
)

var statusColors = map[model.DutyStatus]string{
	model.OffDuty:          util.ColorGreen,
	model.SleeperBerth:     util.ColorBlue,
	model.Driving:          util.ColorRed,
	model.OnDutyNotDriving: util.ColorYellow,
}

// GraphFormatter draws each day as a text duty status grid with its notes,
// remarks and dropped intervals.
type GraphFormatter struct {
	w     io.Writer
	sizer *layout.Sizer
	color bool
}

func NewGraphFormatter(opts Options) *GraphFormatter {
	return &GraphFormatter{
		w:     opts.writer(),
		sizer: layout.NewSizer(opts.Width),
		color: opts.Color,
	}
}

func (f *GraphFormatter) Format(days []model.DayLog) error {
	for i, day := range days {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		f.formatDay(day)
	}
	return nil
}

func dayHours(day model.DayLog) int {
	if day.Window.Length() <= 0 {
		return constants.DayHours
	}
	return int(math.Round(day.Window.Hours()))
}

func (f *GraphFormatter) formatDay(day model.DayLog) {
	hours := dayHours(day)
	cph := f.sizer.CellsPerHour(hours, graphLabelWidth+2+graphTotalsWidth)
	columns := hours * cph
	grid := layout.Rasterize(day.Path, columns)

	title := fmt.Sprintf("%s  Driver's Daily Log (%dh)", day.Date, hours)
	if f.color {
		title = util.FormatHeaderTitle(title)
	}
	fmt.Fprintln(f.w, title)
	fmt.Fprintln(f.w, strings.Repeat(" ", graphLabelWidth+1)+f.hourLabels(day, hours, cph))

	var total float64
	for _, status := range model.AllStatuses {
		hoursIn := day.Hours.ForStatus(status)
		total += hoursIn

		var b strings.Builder
		b.WriteString(f.sizer.PadString(status.ShortLabel(), graphLabelWidth, true))
		b.WriteString("|")
		for c, cell := range grid.Cells[status.Row()] {
			b.WriteString(f.cell(cell, c, cph, status))
		}
		b.WriteString("|")
		b.WriteString(f.sizer.PadString(model.FormatHours(hoursIn), graphTotalsWidth, false))
		fmt.Fprintln(f.w, b.String())
	}
	fmt.Fprintln(f.w, f.sizer.PadString("", graphLabelWidth+columns+2, true)+
		f.sizer.PadString(model.FormatHours(total), graphTotalsWidth, false))

	if len(day.Annotations) > 0 {
		fmt.Fprintln(f.w, "Notes:")
		for _, a := range day.Annotations {
			fmt.Fprintln(f.w, "  "+annotationText(a, float64(hours)))
		}
	}
	if len(day.Remarks) > 0 {
		fmt.Fprintln(f.w, "Remarks:")
		for _, r := range day.Remarks {
			fmt.Fprintln(f.w, "  "+r.Text)
		}
	}
	if len(day.Warnings) > 0 {
		heading := "Warnings:"
		if f.color {
			heading = util.FormatWarningTitle(heading)
		}
		fmt.Fprintln(f.w, heading)
		for _, w := range day.Warnings {
			fmt.Fprintln(f.w, "  "+w.Error())
		}
	}
}

func (f *GraphFormatter) cell(cell layout.Cell, column, cph int, status model.DutyStatus) string {
	switch cell {
	case layout.CellLine:
		return util.Colorize("#", statusColors[status], f.color)
	case layout.CellRiser:
		return "|"
	}
	if column%cph == 0 {
		return "."
	}
	return " "
}

// hourLabels builds the clock header above the grid, spacing labels so
// they never touch.
func (f *GraphFormatter) hourLabels(day model.DayLog, hours, cph int) string {
	step := 1
	for _, s := range []int{1, 2, 3, 4, 6} {
		step = s
		if s*cph >= 3 {
			break
		}
	}

	line := []byte(strings.Repeat(" ", hours*cph+3))
	for h := 0; h < hours; h += step {
		label := fmt.Sprintf("%d", h)
		if day.Window.Length() > 0 {
			label = fmt.Sprintf("%d", day.Window.Start.Add(time.Duration(h)*time.Hour).Hour())
		}
		copy(line[h*cph:], label)
	}
	return strings.TrimRight(string(line), " ")
}

func annotationText(a model.Annotation, hours float64) string {
	parts := []string{util.FormatClock(a.X, hours), util.PadRight(a.Row.ShortLabel(), 8)}
	if a.Location != nil && *a.Location != "" {
		parts = append(parts, "Loc: "+*a.Location)
	}
	if a.OdometerReading != nil {
		parts = append(parts, "Odo: "+util.FormatMiles(*a.OdometerReading))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
