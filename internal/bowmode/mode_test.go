package bowmode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"hold", ModeHold},
		{"Press", ModePress},
		{"toggle", ModePress},
		{" smart ", ModeSmart},
		{"2", ModeSmart},
		{"0", ModeHold},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMode("sometimes")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSettingsNormalized(t *testing.T) {
	s := Settings{Mode: Mode(9), SheatheDelay: -time.Second}.normalized()
	assert.Equal(t, ModeHold, s.Mode)
	assert.Equal(t, DefaultSmartThreshold, s.SmartThreshold)
	assert.Equal(t, DefaultMaxEquipWait, s.MaxEquipWait)
	assert.Zero(t, s.SheatheDelay)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "exit-pending", PhaseExitPending.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
	assert.Equal(t, "smart", ModeSmart.String())
}
