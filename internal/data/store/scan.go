package store

import (
	"fmt"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// timeText scans DATE, TIMESTAMP and TEXT columns alike. Postgres hands
// back time.Time while sqlite keeps whatever text was stored.
type timeText struct {
	value string
	valid bool
	fromTime bool
	t     time.Time
}

func (v *timeText) Scan(src interface{}) error {
	*v = timeText{}
	switch s := src.(type) {
	case nil:
		return nil
	case time.Time:
		v.t, v.valid, v.fromTime = s, true, true
		v.value = s.Format(time.RFC3339Nano)
	case string:
		v.value, v.valid = s, true
	case []byte:
		v.value, v.valid = string(s), true
	default:
		return fmt.Errorf("unsupported time column type %T", src)
	}
	return nil
}

func (v timeText) ptr() *string {
	if !v.valid {
		return nil
	}
	s := v.value
	return &s
}

// date returns the value as YYYY-MM-DD.
func (v timeText) date() string {
	if !v.valid {
		return ""
	}
	if v.fromTime {
		return v.t.Format(model.DateLayout)
	}
	if len(v.value) >= len(model.DateLayout) {
		return v.value[:len(model.DateLayout)]
	}
	return v.value
}
