package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-eld-log/internal/core/model"
)

// Entry is one scheduled duty change relative to midnight of its day.
type Entry struct {
	Status   string
	Start    time.Duration
	End      time.Duration
	Kind     string
	Location string
	Odometer float64
}

// StandardDay is an 11 hour driving day with a rest break and a fuel stop.
// Totals: off 6.50, sleeper 7.50, driving 9.00, on duty not driving 1.00.
var StandardDay = []Entry{
	{Status: "OFF_DUTY", Start: 0, End: 6 * time.Hour},
	{Status: "ON_DUTY_NOT_DRIVING", Start: 6 * time.Hour, End: 6*time.Hour + 30*time.Minute, Location: "Dallas, TX", Odometer: 125000},
	{Status: "DRIVING", Start: 6*time.Hour + 30*time.Minute, End: 11 * time.Hour},
	{Status: "OFF_DUTY", Start: 11 * time.Hour, End: 11*time.Hour + 30*time.Minute, Kind: model.KindRest, Location: "Wichita Falls, TX"},
	{Status: "DRIVING", Start: 11*time.Hour + 30*time.Minute, End: 16 * time.Hour},
	{Status: "ON_DUTY_NOT_DRIVING", Start: 16 * time.Hour, End: 16*time.Hour + 30*time.Minute, Kind: model.KindFuel, Location: "Amarillo, TX", Odometer: 125540},
	{Status: "SLEEPER_BERTH", Start: 16*time.Hour + 30*time.Minute, End: 24 * time.Hour},
}

// TestDataGenerator writes interval files for tests.
type TestDataGenerator struct {
	baseDir  string
	location *time.Location
	nextID   int64
}

// NewTestDataGenerator creates a generator laying days out in loc.
func NewTestDataGenerator(baseDir string, loc *time.Location) *TestDataGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &TestDataGenerator{baseDir: baseDir, location: loc}
}

// Records expands a schedule into raw records for date.
func (g *TestDataGenerator) Records(date string, schedule []Entry) ([]model.RawInterval, error) {
	midnight, err := time.ParseInLocation(model.DateLayout, date, g.location)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture date %q: %w", date, err)
	}

	records := make([]model.RawInterval, 0, len(schedule))
	for _, e := range schedule {
		g.nextID++
		id := g.nextID
		start := midnight.Add(e.Start).Format(time.RFC3339)
		end := midnight.Add(e.End).Format(time.RFC3339)

		rec := model.RawInterval{
			ID:        &id,
			LogDate:   date,
			StartTime: &start,
			EndTime:   &end,
			Status:    e.Status,
			Type:      e.Kind,
		}
		if e.Location != "" {
			location := e.Location
			rec.Location = &location
		}
		if e.Odometer > 0 {
			odometer := e.Odometer
			rec.OdometerReading = &odometer
		}
		records = append(records, rec)
	}
	return records, nil
}

// GenerateTrip writes days consecutive standard days starting at
// startDate into <name>/trip.jsonl, one record per line.
func (g *TestDataGenerator) GenerateTrip(name, startDate string, days int) (string, error) {
	first, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return "", fmt.Errorf("invalid fixture date %q: %w", startDate, err)
	}

	var records []model.RawInterval
	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i).Format(model.DateLayout)
		dayRecords, err := g.Records(date, StandardDay)
		if err != nil {
			return "", err
		}
		records = append(records, dayRecords...)
	}

	path := filepath.Join(g.baseDir, name, "trip.jsonl")
	return path, g.WriteJSONL(path, records)
}

// GenerateDailyLogSet writes a date keyed JSON document to <name>.json.
func (g *TestDataGenerator) GenerateDailyLogSet(name string, schedules map[string][]Entry) (string, error) {
	set := make(model.DailyLogSet, len(schedules))
	for date, schedule := range schedules {
		records, err := g.Records(date, schedule)
		if err != nil {
			return "", err
		}
		set[date] = records
	}

	data, err := sonic.ConfigStd.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(g.baseDir, name+".json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

// GenerateMalformed writes a JSONL file mixing valid records, an unknown
// status and lines that are not JSON.
func (g *TestDataGenerator) GenerateMalformed(name, date string) (string, error) {
	records, err := g.Records(date, []Entry{
		{Status: "OFF_DUTY", Start: 0, End: 8 * time.Hour},
		{Status: "YARD_MOVE", Start: 8 * time.Hour, End: 9 * time.Hour},
		{Status: "DRIVING", Start: 9 * time.Hour, End: 12 * time.Hour},
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(g.baseDir, name, "broken.jsonl")
	if err := g.WriteJSONL(path, records); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	defer f.Close()
	_, err = f.WriteString("{not json\n\n")
	return path, err
}

// WriteJSONL writes records to filename, creating parent directories.
func (g *TestDataGenerator) WriteJSONL(filename string, records []model.RawInterval) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := sonic.ConfigStd.NewEncoder(file)
	for _, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}
