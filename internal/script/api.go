package script

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
)

// api holds the globals bound into one run.
type api struct {
	host Host
	log  zerolog.Logger

	checks int
	failed string
}

func (a *api) install(L *lua.LState) {
	for name, fn := range map[string]lua.LGFunction{
		"press":    a.press,
		"release":  a.release,
		"tap":      a.tap,
		"tick":     a.tick,
		"anim":     a.anim,
		"power":    a.power,
		"mode":     a.mode,
		"equip":    a.equip,
		"choose":   a.choose,
		"drawn":    a.drawn,
		"combat":   a.combat,
		"phase":    a.phase,
		"equipped": a.equipped,
		"status":   a.status,
		"expect":   a.expect,
		"log":      a.logLine,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func checkButton(L *lua.LState, n int) (input.Device, int) {
	name := L.CheckString(n)
	dev, code, ok := input.ParseButton(name)
	if !ok {
		L.ArgError(n, fmt.Sprintf("unknown button %q", name))
	}
	return dev, code
}

func checkSeconds(L *lua.LState, n int, def float64) float64 {
	s := float64(L.OptNumber(n, lua.LNumber(def)))
	if s < 0 || s > MaxTick {
		L.ArgError(n, fmt.Sprintf("seconds must be within [0, %g]", MaxTick))
	}
	return s
}

func (a *api) press(L *lua.LState) int {
	a.host.Press(checkButton(L, 1))
	return 0
}

func (a *api) release(L *lua.LState) int {
	a.host.Release(checkButton(L, 1))
	return 0
}

func (a *api) tap(L *lua.LState) int {
	dev, code := checkButton(L, 1)
	hold := checkSeconds(L, 2, 0.1)
	a.host.Press(dev, code)
	a.host.Run(hold)
	a.host.Release(dev, code)
	return 0
}

func (a *api) tick(L *lua.LState) int {
	a.host.Run(checkSeconds(L, 1, 0))
	return 0
}

func (a *api) anim(L *lua.LState) int {
	L.Push(lua.LBool(a.host.AnimationEvent(L.CheckString(1))))
	return 1
}

func (a *api) power(L *lua.LState) int {
	name := L.CheckString(1)
	p, ok := game.ParsePower(strings.ToLower(name))
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown power %q", name))
	}
	a.host.Power(p)
	return 0
}

func (a *api) mode(L *lua.LState) int {
	m, err := bowmode.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	if err := a.host.SetMode(m); err != nil {
		a.log.Warn().Err(err).Msg("mode not saved")
	}
	return 0
}

func (a *api) equip(L *lua.LState) int {
	name := L.CheckString(1)
	slot := game.SlotRight
	switch hand := L.OptString(2, "right"); hand {
	case "right":
	case "left":
		slot = game.SlotLeft
	case "default":
		slot = game.SlotDefault
	default:
		L.ArgError(2, fmt.Sprintf("unknown hand %q", hand))
	}
	if err := a.host.Equip(name, slot); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (a *api) choose(L *lua.LState) int {
	if err := a.host.Choose(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (a *api) drawn(L *lua.LState) int {
	a.host.SetDrawn(L.CheckBool(1))
	return 0
}

func (a *api) combat(L *lua.LState) int {
	a.host.SetCombat(L.CheckBool(1))
	return 0
}

func (a *api) phase(L *lua.LState) int {
	L.Push(lua.LString(a.host.Phase().String()))
	return 1
}

func (a *api) equipped(L *lua.LState) int {
	lo := a.host.Loadout()
	t := L.NewTable()
	t.RawSetString("right", lua.LString(lo.Right))
	t.RawSetString("left", lua.LString(lo.Left))
	t.RawSetString("ammo", lua.LString(lo.Ammo))
	t.RawSetString("drawn", lua.LBool(lo.Drawn))
	t.RawSetString("combat", lua.LBool(lo.Combat))
	L.Push(t)
	return 1
}

func (a *api) status(L *lua.LState) int {
	st := a.host.Status()
	t := L.NewTable()
	t.RawSetString("phase", lua.LString(st.Phase.String()))
	t.RawSetString("mode", lua.LString(st.Mode.String()))
	t.RawSetString("hotkey_down", lua.LBool(st.HotkeyDown))
	t.RawSetString("bow_equipped", lua.LBool(st.BowEquipped))
	t.RawSetString("pumping", lua.LBool(st.Pumping))
	t.RawSetString("pump_held", lua.LNumber(st.PumpHeld))
	t.RawSetString("exit_pending", lua.LBool(st.ExitPending))
	t.RawSetString("tap_armed", lua.LBool(st.TapArmed))
	t.RawSetString("sheathing", lua.LBool(st.Sheathing))
	L.Push(t)
	return 1
}

func (a *api) expect(L *lua.LState) int {
	a.checks++
	if lua.LVAsBool(L.Get(1)) {
		return 0
	}
	msg := L.OptString(2, fmt.Sprintf("expectation %d", a.checks))
	a.failed = msg
	L.RaiseError("expectation failed: %s", msg)
	return 0
}

func (a *api) logLine(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	a.log.Info().Msg(strings.Join(parts, " "))
	return 0
}
