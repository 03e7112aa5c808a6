package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDutyStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected DutyStatus
		row      int
	}{
		{"OFF_DUTY", OffDuty, 0},
		{"SLEEPER_BERTH", SleeperBerth, 1},
		{"DRIVING", Driving, 2},
		{"ON_DUTY_NOT_DRIVING", OnDutyNotDriving, 3},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, err := ParseDutyStatus(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
			assert.Equal(t, tt.row, status.Row())
			assert.Equal(t, tt.code, status.Code())
			assert.Equal(t, tt.code, status.String())
		})
	}
}

func TestParseDutyStatus_Unknown(t *testing.T) {
	for _, code := range []string{"", "driving", "YARD_MOVE", "PERSONAL_CONVEYANCE"} {
		_, err := ParseDutyStatus(code)
		assert.True(t, errors.Is(err, ErrUnknownStatus), code)
	}
}

func TestAllStatusesMatchRows(t *testing.T) {
	require.Len(t, AllStatuses, RowCount)
	for i, s := range AllStatuses {
		assert.Equal(t, i, s.Row())
	}
}

func TestDutyStatusLabels(t *testing.T) {
	assert.Equal(t, "1. Off Duty (not driving)", OffDuty.Label())
	assert.Equal(t, "2. Sleeper Berth", SleeperBerth.Label())
	assert.Equal(t, "3. Driving", Driving.Label())
	assert.Equal(t, "4. On Duty (not driving)", OnDutyNotDriving.Label())
	assert.Equal(t, "SLEEPER", SleeperBerth.ShortLabel())

	assert.True(t, Driving.IsOnDuty())
	assert.True(t, OnDutyNotDriving.IsOnDuty())
	assert.False(t, OffDuty.IsOnDuty())
	assert.False(t, SleeperBerth.IsOnDuty())
}
