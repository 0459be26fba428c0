package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickdraw/internal/app"
	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/catalog"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
)

// tapHold is how long a plain key stays down. Terminals report presses
// only, so every key other than the toggles is a short tap.
const tapHold = 0.1

type button struct {
	dev  input.Device
	code int
}

// view is the interactive terminal front end.
type view struct {
	screen tcell.Screen
	drv    *app.Driver
	strs   *catalog.Strings

	toggled map[button]bool
	taps    map[button]float64
	status  string
}

func runInteractive(ctx context.Context, drv *app.Driver) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	v := &view{
		screen:  screen,
		drv:     drv,
		strs:    drv.App().Strings(),
		toggled: make(map[button]bool),
		taps:    make(map[button]float64),
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			v.step(dt)
			v.draw()
		}
	}
}

// step advances the driver and lets go of expired taps.
func (v *view) step(dt float64) {
	v.drv.Advance(dt)
	for b, left := range v.taps {
		if left -= dt; left > 0 {
			v.taps[b] = left
			continue
		}
		delete(v.taps, b)
		v.drv.Release(b.dev, b.code)
	}
	if code, ok := v.drv.App().PollCapture(); ok {
		class, c := input.DecodeCapture(code)
		v.status = v.strs.Format(catalog.KeyCaptured, input.CodeName(class, c))
	}
}

// handle reacts to one terminal event and reports whether to quit.
func (v *view) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return v.handleRune(e.Rune())
		}
	}
	return false
}

func (v *view) handleRune(r rune) bool {
	a := v.drv.App()
	lo := v.drv.Loadout()
	switch unicode.ToLower(r) {
	case 'q':
		return true
	case 'v':
		v.toggle(button{input.DeviceKeyboard, int(input.KeyV)})
	case ' ':
		v.toggle(button{input.DeviceMouse, int(input.MouseLeft - input.MouseOffset)})
	case 'd':
		v.drv.SetDrawn(!lo.Drawn)
	case 'c':
		v.drv.SetCombat(!lo.Combat)
	case 'w':
		v.drv.Power(game.PowerWerewolf)
	case 'm':
		next := bowmode.Mode((int(a.Config().Mode) + 1) % 3)
		if err := a.SetMode(next); err != nil {
			v.status = err.Error()
		}
	case 'b':
		if it, ok := v.drv.Find("Hunting Bow"); ok {
			if err := a.ToggleChosenBow(it.Ref); err != nil {
				v.status = err.Error()
			}
		}
	case 'k':
		a.RequestCapture()
		v.status = v.strs.Get(catalog.KeyCapturing)
	default:
		dev, code, ok := input.ParseButton(string(unicode.ToUpper(r)))
		if !ok {
			return false
		}
		b := button{dev, code}
		if _, held := v.taps[b]; !held {
			v.drv.Press(dev, code)
		}
		v.taps[b] = tapHold
	}
	return false
}

// toggle flips a held button; terminals have no key-up events.
func (v *view) toggle(b button) {
	if v.toggled[b] {
		delete(v.toggled, b)
		v.drv.Release(b.dev, b.code)
		return
	}
	v.toggled[b] = true
	v.drv.Press(b.dev, b.code)
}

func (v *view) draw() {
	v.screen.Clear()
	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	st := v.drv.Status()
	lo := v.drv.Loadout()
	row := 0
	line := func(style tcell.Style, format string, args ...any) {
		v.print(0, row, style, fmt.Sprintf(format, args...))
		row++
	}

	line(bold, "%s", v.strs.Get(catalog.KeyTitle))
	row++
	line(tcell.StyleDefault, "%-10s %s", v.strs.Get(catalog.KeyPhase), st.Phase)
	line(tcell.StyleDefault, "%-10s %s", v.strs.Get(catalog.KeyMode), st.Mode)
	line(tcell.StyleDefault, "%-10s %s", v.strs.Get(catalog.KeyRight), lo.Right)
	line(tcell.StyleDefault, "%-10s %s", v.strs.Get(catalog.KeyLeft), lo.Left)
	line(tcell.StyleDefault, "%-10s %s", v.strs.Get(catalog.KeyAmmo), lo.Ammo)
	line(dim, "drawn=%t combat=%t pumping=%t held=%.2f", lo.Drawn, lo.Combat, st.Pumping, st.PumpHeld)
	row++

	var held []string
	for b := range v.toggled {
		held = append(held, input.CodeName(classOf(b.dev), input.Code(b.code)+offsetOf(b.dev)))
	}
	line(dim, "held: %s", strings.Join(held, " "))

	line(bold, "%s", v.strs.Get(catalog.KeySynthetic))
	hist := v.drv.History()
	for i := len(hist) - 1; i >= 0 && i >= len(hist)-6; i-- {
		if hist[i].Synthetic {
			line(tcell.StyleDefault, "  %s", hist[i])
		}
	}
	row++
	if v.status != "" {
		line(tcell.StyleDefault, "%s", v.status)
	}
	line(dim, "%s", v.strs.Get(catalog.KeyHelp))
	v.screen.Show()
}

func (v *view) print(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func classOf(d input.Device) input.Class {
	if d == input.DeviceGamepad {
		return input.ClassGamepad
	}
	return input.ClassKeyboard
}

func offsetOf(d input.Device) input.Code {
	if d == input.DeviceMouse {
		return input.MouseOffset
	}
	return 0
}
