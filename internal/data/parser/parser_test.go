package parser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewParser(t *testing.T) {
	p := NewParser(0, nil)
	assert.Equal(t, 1, p.concurrency)
	assert.Equal(t, time.Local, p.location)
}

func TestParse_DateKeyedObject(t *testing.T) {
	doc := `{
		"2025-06-10": [
			{"id": 1, "log_date": "2025-06-10", "start_time": "2025-06-10T00:00:00Z", "end_time": "2025-06-10T08:00:00Z", "status": "OFF_DUTY", "status_display": "1. Off Duty (not driving)"},
			{"id": 2, "start_time": "2025-06-10T08:00:00Z", "end_time": "2025-06-10T10:00:00Z", "status": "DRIVING", "location": "Dallas, TX", "odometer_reading": 1200.5}
		],
		"2025-06-11": []
	}`

	set, err := NewParser(1, time.UTC).Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Len(t, set["2025-06-10"], 2)
	assert.Empty(t, set["2025-06-11"])

	rec := set["2025-06-10"][1]
	assert.Equal(t, int64(2), *rec.ID)
	assert.Equal(t, "DRIVING", rec.Status)
	assert.Equal(t, "Dallas, TX", *rec.Location)
	assert.Equal(t, 1200.5, *rec.OdometerReading)
	assert.Equal(t, "1. Off Duty (not driving)", set["2025-06-10"][0].StatusDisplay)
}

func TestParse_ArrayGroupsByDate(t *testing.T) {
	doc := `[
		{"log_date": "2025-06-11", "start_time": "2025-06-10T23:00:00Z", "end_time": "2025-06-11T01:00:00Z", "status": "DRIVING"},
		{"start_time": "2025-06-10T22:00:00-05:00", "end_time": "2025-06-10T23:00:00-05:00", "status": "OFF_DUTY"},
		{"status": "DRIVING"}
	]`

	set, err := NewParser(1, time.UTC).Parse([]byte(doc))
	require.NoError(t, err)

	assert.Len(t, set["2025-06-11"], 2, "log_date wins, then start date in UTC")
	assert.Len(t, set[""], 1)
}

func TestParse_Empty(t *testing.T) {
	set, err := NewParser(1, time.UTC).Parse([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, set)

	set, err = NewParser(1, time.UTC).Parse([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, set)
}

func TestParse_Invalid(t *testing.T) {
	_, err := NewParser(1, time.UTC).Parse([]byte(`{"2025-06-10": "nope"}`))
	assert.Error(t, err)
}

func TestParseFile_JSONLSkipsInvalidLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "day.jsonl", `{"log_date":"2025-06-10","start_time":"2025-06-10T08:00:00Z","end_time":"2025-06-10T10:00:00Z","status":"DRIVING","type":"fuel"}
not json

{"log_date":"2025-06-10","start_time":"2025-06-10T10:00:00Z","end_time":"2025-06-10T11:00:00Z","status":"ON_DUTY_NOT_DRIVING"}
`)

	set, skipped, err := NewParser(1, time.UTC).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, set["2025-06-10"], 2)
	assert.Equal(t, "fuel", set["2025-06-10"][0].Type)
}

func TestParseFile_Missing(t *testing.T) {
	_, _, err := NewParser(1, time.UTC).ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseAll_MergesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.json", `{"2025-06-10":[{"start_time":"2025-06-10T00:00:00Z","end_time":"2025-06-10T01:00:00Z","status":"OFF_DUTY"}]}`),
		writeFile(t, dir, "b.jsonl", `{"log_date":"2025-06-10","start_time":"2025-06-10T01:00:00Z","end_time":"2025-06-10T02:00:00Z","status":"DRIVING"}`),
		writeFile(t, dir, "c.json", `{"2025-06-10":[{"start_time":"2025-06-10T02:00:00Z","end_time":"2025-06-10T03:00:00Z","status":"SLEEPER_BERTH"}]}`),
		writeFile(t, dir, "broken.json", `{`),
	}

	set, errs := NewParser(4, time.UTC).ParseAll(files)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "broken.json")

	require.Len(t, set["2025-06-10"], 3)
	assert.Equal(t, "OFF_DUTY", set["2025-06-10"][0].Status)
	assert.Equal(t, "DRIVING", set["2025-06-10"][1].Status)
	assert.Equal(t, "SLEEPER_BERTH", set["2025-06-10"][2].Status)
}

func TestParseFiles_ReportsEveryFile(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"1.json", "2.json", "3.json", "4.json", "5.json"} {
		files = append(files, writeFile(t, dir, name, `{}`))
	}

	seen := make(map[int]bool)
	for result := range NewParser(2, time.UTC).ParseFiles(files) {
		require.NoError(t, result.Error)
		assert.Equal(t, files[result.Index], result.File)
		seen[result.Index] = true
	}
	assert.Len(t, seen, len(files))
}

func TestMerge(t *testing.T) {
	a := model.DailyLogSet{"2025-06-10": {{Status: "OFF_DUTY"}}}
	b := model.DailyLogSet{"2025-06-10": {{Status: "DRIVING"}}, "2025-06-11": {{Status: "SLEEPER_BERTH"}}}

	merged := Merge(a, b)
	assert.Len(t, merged, 2)
	assert.Equal(t, "DRIVING", merged["2025-06-10"][1].Status)
	assert.Len(t, a["2025-06-10"], 1, "inputs are not modified")
}
