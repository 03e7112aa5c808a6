package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	ical "github.com/emersion/go-ical"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/testing/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		expected Formatter
	}{
		{FormatTable, &TableFormatter{}},
		{FormatSummary, &SummaryFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatCSV, &CSVFormatter{}},
		{FormatGraph, &GraphFormatter{}},
		{FormatICS, &ICSFormatter{}},
		{"", &TableFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.expected, New(tt.name, Options{Writer: &bytes.Buffer{}, Width: 80}))
		})
	}

	assert.True(t, IsSupported("graph"))
	assert.False(t, IsSupported("pdf"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Writer: &buf}).Format(sampleDays(t)))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "On Duty (ND)")
	assert.Regexp(t, `2025-06-10 │\s+9\.50 │\s+0\.50 │\s+10\.00 │\s+6\.00 │\s+8\.00 │\s+1 │\s+1 │`, lines[3])
	assert.Regexp(t, `2025-06-11 │\s+0\.00 │`, lines[4])
	assert.Regexp(t, `Total\s+│\s+9\.50 │`, lines[6])
	assert.True(t, strings.HasPrefix(lines[7], "└"))
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(Options{Writer: &buf}).Format(sampleDays(t)))

	out := buf.String()
	assert.Contains(t, out, "Driver's Daily Log Summary")
	assert.Contains(t, out, "Date Range: 2025-06-10 to 2025-06-11 (2 days)")
	assert.Regexp(t, `3\. Driving:\s+9\.50`, out)
	assert.Regexp(t, `Total On Duty \(3 \+ 4\):\s+10\.00`, out)
	assert.Contains(t, out, "Recap (70 hr / 8 day):")
	assert.Regexp(t, `2025-06-11\s+0\.00\s+10\.00\s+60\.00`, out)
	assert.Contains(t, out, "2025-06-10  FUEL at 14:00: Amarillo, TX")
	assert.Contains(t, out, "Dropped Intervals (1):")
}

func TestSummaryFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(Options{Writer: &buf}).Format(nil))
	assert.Contains(t, buf.String(), "No log days to summarize")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{Writer: &buf}).Format(sampleDays(t)))

	var decoded []struct {
		Date    string               `json:"date"`
		Totals  model.DurationTotals `json:"totals"`
		Path    []model.Segment      `json:"path"`
		Remarks []struct {
			Text string `json:"text"`
		} `json:"remarks"`
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "6.00", decoded[0].Totals.SleeperBerth)
	assert.Equal(t, "FUEL at 14:00: Amarillo, TX", decoded[0].Remarks[0].Text)
	assert.Equal(t, "UnknownStatus", decoded[0].Warnings[0].Kind)
	require.Len(t, decoded[1].Path, 1)
	assert.Equal(t, model.Horizontal(model.OffDuty, 0, 1), decoded[1].Path[0])
	assert.Contains(t, buf.String(), `"type": "vertical"`)
}

func TestJSONFormatter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{Writer: &buf}).Format(nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(Options{Writer: &buf}).Format(sampleDays(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, []string{"2025-06-10", "9.50", "0.50", "10.00", "6.00", "8.00", "FUEL at 14:00: Amarillo, TX", "1"}, records[1])
	assert.Equal(t, []string{"2025-06-11", "0.00", "0.00", "0.00", "0.00", "0.00", "", "0"}, records[2])
}

func TestGraphFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGraphFormatter(Options{Writer: &buf, Width: 80}).Format(sampleDays(t)[:1]))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "2025-06-10  Driver's Daily Log (24h)", lines[0])

	// 80 columns fit two cells per hour.
	off := lines[2]
	assert.True(t, strings.HasPrefix(off, "OFF DUTY  |################"), off)
	assert.True(t, strings.HasSuffix(off, "|    8.00"), off)

	driving := lines[4]
	assert.Contains(t, driving, "############")
	assert.True(t, strings.HasSuffix(driving, "|    9.50"), driving)

	out := buf.String()
	assert.Contains(t, out, "Notes:\n  14:00  ON DUTY   Loc: Amarillo, TX  Odo: 125,340")
	assert.Contains(t, out, "Remarks:\n  FUEL at 14:00: Amarillo, TX")
	assert.Contains(t, out, "Warnings:\n  2025-06-10 interval #5 dropped")
}

func TestGraphFormatter_EmptyDay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGraphFormatter(Options{Writer: &buf, Width: 40}).Format(sampleDays(t)[1:]))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "OFF DUTY  |"+strings.Repeat("#", 24)+"|    0.00", lines[2])
	assert.Equal(t, "DRIVING   |"+strings.Repeat(".", 24)+"|    0.00", lines[4])
	assert.NotContains(t, buf.String(), "Notes:")
}

func TestICSFormatter(t *testing.T) {
	stamp := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, NewICSFormatter(Options{Writer: &buf, Now: func() time.Time { return stamp }}).Format(sampleDays(t)))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)

	version, err := cal.Props.Text(ical.PropVersion)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)

	events := cal.Events()
	require.Len(t, events, 5)

	summary, err := events[1].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Driving", summary)

	start, err := events[1].DateTimeStart(nil)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)))

	location, err := events[2].Props.Text(ical.PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "Amarillo, TX", location)

	description, err := events[2].Props.Text(ical.PropDescription)
	require.NoError(t, err)
	assert.Contains(t, description, "FUEL at 14:00: Amarillo, TX")
	assert.Contains(t, description, "Odometer: 125,340")

	uid, err := events[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10-0@go-eld-log", uid)
}

func TestGraphFormatter_ColorOnlyAddsEscapes(t *testing.T) {
	days := sampleDays(t)

	var plain, colored bytes.Buffer
	require.NoError(t, NewGraphFormatter(Options{Writer: &plain, Width: 100}).Format(days))
	require.NoError(t, NewGraphFormatter(Options{Writer: &colored, Width: 100, Color: true}).Format(days))

	assert.NotEqual(t, plain.String(), colored.String())
	assert.Equal(t, plain.String(), screen.StripANSI(colored.String()))
}
