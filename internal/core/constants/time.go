package constants

import "time"

const (
	// Hours-of-service recap, 70 hours in 8 days
	RecapCycleDays  = 8
	RecapCycleHours = 70.0

	// Nominal log sheet length; DST days are 23 or 25 hours
	DayHours = 24

	// Watch mode
	DefaultWatchDebounce = 300 * time.Millisecond

	// HTTP server
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 5 * time.Second
)
