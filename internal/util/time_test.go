package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTimeProvider() {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()
}

func TestInitializeTimeProvider(t *testing.T) {
	resetTimeProvider()
	t.Cleanup(resetTimeProvider)

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone America/Chicago", timezone: "America/Chicago"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
		{name: "empty timezone defaults to Local", timezone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, GetTimeProvider().Location())
		})
	}
}

func TestInitializeTimeProvider_KeepsPreviousOnError(t *testing.T) {
	resetTimeProvider()
	t.Cleanup(resetTimeProvider)

	require.NoError(t, InitializeTimeProvider("UTC"))
	require.Error(t, InitializeTimeProvider("Mars/Olympus_Mons"))
	assert.Equal(t, time.UTC, GetTimeProvider().Location())
}

func TestGetTimeProvider_DefaultsToLocal(t *testing.T) {
	resetTimeProvider()
	t.Cleanup(resetTimeProvider)

	assert.Equal(t, time.Local, GetTimeProvider().Location())
}

func TestTimeProvider_ParseDate(t *testing.T) {
	tp := &TimeProvider{location: time.UTC}

	got, err := tp.ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = tp.ParseDate("06/10/2025")
	assert.Error(t, err)
}

func TestTimeProvider_FormatAndToday(t *testing.T) {
	loc := time.FixedZone("CDT", -5*3600)
	tp := &TimeProvider{location: loc}

	ts := time.Date(2025, 6, 10, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-09 22:30", tp.Format(ts, "2006-01-02 15:04"))
	assert.Equal(t, loc, tp.In(ts).Location())
	assert.Len(t, tp.Today(), len("2006-01-02"))
}

func TestTimeProvider_ConcurrentAccess(t *testing.T) {
	tp := &TimeProvider{location: time.UTC}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = tp.SetTimezone("UTC")
				return
			}
			_ = tp.Now()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, time.UTC, tp.Location())
}
