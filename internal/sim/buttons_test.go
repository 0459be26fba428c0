package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/input"
)

func TestButtonsEdges(t *testing.T) {
	b := NewButtons()
	b.Press(input.DeviceKeyboard, int(input.KeyV))

	batch := b.Poll(0.1)
	require.Len(t, batch, 1)
	assert.True(t, batch[0].IsDown())

	batch = b.Poll(0.1)
	require.Len(t, batch, 1)
	assert.True(t, batch[0].IsHeld())
	assert.InDelta(t, 0.1, batch[0].Held, 1e-6)

	b.Release(input.DeviceKeyboard, int(input.KeyV))
	assert.False(t, b.IsHeld(input.DeviceKeyboard, int(input.KeyV)))
	batch = b.Poll(0.1)
	require.Len(t, batch, 1)
	assert.True(t, batch[0].IsUp())
	assert.InDelta(t, 0.2, batch[0].Held, 1e-6)

	assert.Empty(t, b.Poll(0.1))
}

func TestButtonsTapWithinOnePoll(t *testing.T) {
	b := NewButtons()
	b.Press(input.DeviceMouse, 0)
	b.Release(input.DeviceMouse, 0)

	batch := b.Poll(1.0 / 60)
	require.Len(t, batch, 2)
	assert.True(t, batch[0].IsDown())
	assert.True(t, batch[1].IsUp())
	assert.True(t, batch[0].IsAttack())
	assert.Empty(t, b.Poll(1.0/60))
}

func TestButtonsOrderAndReleaseAll(t *testing.T) {
	b := NewButtons()
	b.Press(input.DeviceGamepad, int(input.PadA))
	b.Press(input.DeviceKeyboard, int(input.KeyV))
	b.Press(input.DeviceKeyboard, int(input.KeyLeftShift))
	b.Press(input.DeviceKeyboard, int(input.KeyV))

	batch := b.Poll(0.1)
	require.Len(t, batch, 3)
	assert.Equal(t, int(input.KeyLeftShift), batch[0].Code)
	assert.Equal(t, int(input.KeyV), batch[1].Code)
	assert.Equal(t, input.DeviceGamepad, batch[2].Device)

	b.ReleaseAll()
	for _, ev := range b.Poll(0.1) {
		assert.True(t, ev.IsUp(), ev.String())
	}
	assert.Empty(t, b.Poll(0.1))
}
