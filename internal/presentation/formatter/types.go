package formatter

import (
	"io"
	"os"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Output format names
const (
	FormatTable   = "table"
	FormatSummary = "summary"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatGraph   = "graph"
	FormatICS     = "ics"
)

// Supported lists every output format.
var Supported = []string{FormatTable, FormatSummary, FormatJSON, FormatCSV, FormatGraph, FormatICS}

// Formatter renders computed day logs.
type Formatter interface {
	Format(days []model.DayLog) error
}

// Options are shared by all formatters.
type Options struct {
	Writer io.Writer
	// Width is the terminal width used by the graph; 0 detects it.
	Width int
	Color bool
	// Now stamps generated calendars; nil means time.Now.
	Now func() time.Time
}

func (o Options) writer() io.Writer {
	if o.Writer == nil {
		return os.Stdout
	}
	return o.Writer
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// IsSupported reports whether name is a known format.
func IsSupported(name string) bool {
	for _, f := range Supported {
		if f == name {
			return true
		}
	}
	return false
}

// New returns the formatter for name, defaulting to the table.
func New(name string, opts Options) Formatter {
	switch name {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatCSV:
		return NewCSVFormatter(opts)
	case FormatSummary:
		return NewSummaryFormatter(opts)
	case FormatGraph:
		return NewGraphFormatter(opts)
	case FormatICS:
		return NewICSFormatter(opts)
	default:
		return NewTableFormatter(opts)
	}
}
