package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider holds the timezone in which calendar days are laid out.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// InitializeTimeProvider sets the global timezone. On error the previous
// provider stays in place.
func InitializeTimeProvider(timezone string) error {
	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	mu.Lock()
	globalTimeProvider = provider
	mu.Unlock()
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to Local.
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// LoadTimezone resolves a timezone name; "" and "Local" mean time.Local.
func LoadTimezone(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/Chicago, America/New_York, America/Los_Angeles", timezone, err)
	}
	return loc, nil
}

func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc, err := LoadTimezone(timezone)
	if err != nil {
		return err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.location = loc
	return nil
}

// Location returns the configured timezone.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

func (tp *TimeProvider) Now() time.Time {
	return time.Now().In(tp.Location())
}

func (tp *TimeProvider) In(t time.Time) time.Time {
	return t.In(tp.Location())
}

// Format formats t in the configured timezone.
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return tp.In(t).Format(layout)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (tp *TimeProvider) Today() string {
	return tp.Now().Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD date at midnight in the configured timezone.
func (tp *TimeProvider) ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", date, tp.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return t, nil
}
