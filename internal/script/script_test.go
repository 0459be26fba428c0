package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/app"
	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/sim"
)

func newDriver(t *testing.T) *app.Driver {
	t.Helper()
	w := sim.NewWorld()
	sim.PopulateSample(w.Actor())
	a, err := app.New(app.Options{World: w, Env: []string{}})
	require.NoError(t, err)
	return app.NewDriver(a, w)
}

const holdScenario = `
equip("Iron Sword")
equip("Torch", "left")
drawn(true)
tick(1)
choose("Hunting Bow")

press("V")
tick(0.3)
expect(phase() == "active", "entered")
expect(string.find(equipped().right, "Hunting Bow", 1, true) ~= nil, "bow in hand")
tick(0.6)
expect(status().pumping, "pumping")

release("V")
tick(0.1)
expect(phase() == "idle", "exited")
local eq = equipped()
expect(eq.right == "Iron Sword", "sword back")
expect(eq.left == "Torch", "torch back")
`

func TestHoldScenario(t *testing.T) {
	d := newDriver(t)
	err := New(d).Run(context.Background(), "hold", holdScenario)
	require.NoError(t, err)
	assert.Equal(t, bowmode.PhaseIdle, d.Phase())
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hold.lua")
	require.NoError(t, os.WriteFile(path, []byte(holdScenario), 0o644))
	require.NoError(t, New(newDriver(t)).RunFile(context.Background(), path))

	err := New(newDriver(t)).RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpectFailure(t *testing.T) {
	err := New(newDriver(t)).Run(context.Background(), "fail", `expect(phase() == "active", "not yet")`)
	require.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "not yet")
	assert.Contains(t, err.Error(), "script fail")
}

func TestBadArguments(t *testing.T) {
	tests := map[string]string{
		"button": `press("NoSuchKey")`,
		"power":  `power("dragon")`,
		"mode":   `mode("sometimes")`,
		"hand":   `equip("Iron Sword", "foot")`,
		"item":   `equip("Glass Sword")`,
		"tick":   `tick(-1)`,
	}
	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			err := New(newDriver(t)).Run(context.Background(), name, code)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrExpectation)
		})
	}
}

func TestModeAndPower(t *testing.T) {
	d := newDriver(t)
	code := `
mode("smart")
expect(status().mode == "smart")
power("werewolf")
expect(phase() == "idle")
expect(anim("bowReset") == false, "nothing to reset")
combat(true)
expect(equipped().combat)
`
	require.NoError(t, New(d).Run(context.Background(), "modes", code))
	assert.Equal(t, bowmode.ModeSmart, d.App().Config().Mode)
}

func TestSandbox(t *testing.T) {
	code := `
expect(dofile == nil and loadfile == nil and load == nil, "loaders removed")
expect(require == nil, "require removed")
expect(io == nil and os == nil and debug == nil, "unsafe libs closed")
expect(math.max(1, 2) == 2 and string.upper("v") == "V" and table.concat({"a"}) == "a")
`
	require.NoError(t, New(newDriver(t)).Run(context.Background(), "sandbox", code))
}

func TestTimeout(t *testing.T) {
	r := New(newDriver(t), WithTimeout(50*time.Millisecond))
	err := r.Run(context.Background(), "spin", `while true do end`)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	r := New(newDriver(t), WithLogger(zerolog.New(&buf)))
	require.NoError(t, r.Run(context.Background(), "talk", `log("phase is", phase(), 3)`))
	assert.Contains(t, buf.String(), `"message":"phase is idle 3"`)
	assert.Contains(t, buf.String(), `"script":"talk"`)
}

func TestBundledScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scripts", "*.lua"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			require.NoError(t, New(newDriver(t)).RunFile(context.Background(), path))
		})
	}
}
