package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureEncoding(t *testing.T) {
	tests := []struct {
		class Class
		code  Code
		want  int
	}{
		{ClassKeyboard, KeyV, int(KeyV)},
		{ClassKeyboard, MouseRight, int(MouseRight)},
		{ClassGamepad, PadDPadUp, -1},
		{ClassGamepad, PadY, -int(PadY) - 1},
	}
	for _, tt := range tests {
		got := EncodeCapture(tt.class, tt.code)
		assert.Equal(t, tt.want, got)
		class, code := DecodeCapture(got)
		assert.Equal(t, tt.class, class)
		assert.Equal(t, tt.code, code)
	}
}

func TestCaptureOneShot(t *testing.T) {
	var c Capture

	assert.False(t, c.Observe(Event{Device: DeviceKeyboard, Code: int(KeyV), Value: 1}))
	_, ok := c.Poll()
	assert.False(t, ok)

	c.Request()
	require.True(t, c.Armed())

	assert.False(t, c.Observe(Event{Device: DeviceGamepad, Code: int(PadA), Value: 1, Held: 0.2}), "held is not a down edge")
	assert.False(t, c.Observe(NewAttackEvent(1, 0)), "synthetic events are ignored")
	assert.True(t, c.Observe(Event{Device: DeviceGamepad, Code: int(PadA), Value: 1}))
	assert.False(t, c.Armed())

	assert.False(t, c.Observe(Event{Device: DeviceKeyboard, Code: int(KeyB), Value: 1}))

	v, ok := c.Poll()
	require.True(t, ok)
	assert.Equal(t, -int(PadA)-1, v)

	_, ok = c.Poll()
	assert.False(t, ok)
}
