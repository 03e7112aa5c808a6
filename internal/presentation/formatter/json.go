package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(opts Options) *JSONFormatter {
	return &JSONFormatter{w: opts.writer()}
}

// Format writes the day logs as an indented JSON array.
func (f *JSONFormatter) Format(days []model.DayLog) error {
	if days == nil {
		days = []model.DayLog{}
	}
	encoder := sonic.ConfigStd.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(days)
}
