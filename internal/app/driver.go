package app

import (
	"fmt"
	"strings"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/catalog"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
	"github.com/dshills/quickdraw/internal/sim"
)

// DefaultStep is the driver's poll interval, in seconds.
const DefaultStep = 1.0 / 60

// historySize is how many forwarded events the driver remembers.
const historySize = 16

// Loadout describes what the simulated player holds.
type Loadout struct {
	Right, Left, Ammo string
	Drawn, Combat     bool
}

// Driver runs an Application against the in-memory world: it polls the
// simulated buttons, feeds the batch through ProcessInput and forwards
// the world's animation tags. The harness and scripts drive it.
type Driver struct {
	app     *Application
	world   *sim.World
	buttons *sim.Buttons
	step    float64

	history []input.Event
	elapsed float64
}

// NewDriver wraps app and world. app must have been built on world.
func NewDriver(app *Application, world *sim.World) *Driver {
	return &Driver{app: app, world: world, buttons: sim.NewButtons(), step: DefaultStep}
}

// SetStep changes the poll interval used by Run.
func (d *Driver) SetStep(seconds float64) {
	if seconds > 0 {
		d.step = seconds
	}
}

// App returns the driven application.
func (d *Driver) App() *Application {
	return d.app
}

// World returns the simulated world.
func (d *Driver) World() *sim.World {
	return d.world
}

// Elapsed returns the simulated seconds so far.
func (d *Driver) Elapsed() float64 {
	return d.elapsed
}

// Press holds a button from the next poll on.
func (d *Driver) Press(dev input.Device, code int) {
	d.buttons.Press(dev, code)
}

// Release lets a button go on the next poll.
func (d *Driver) Release(dev input.Device, code int) {
	d.buttons.Release(dev, code)
}

// Advance runs one poll dt seconds after the previous one.
func (d *Driver) Advance(dt float64) {
	out := d.app.ProcessInput(d.buttons.Poll(dt), dt)
	for _, ev := range out {
		if ev.Synthetic || ev.IsAttack() {
			d.remember(ev)
		}
	}
	for _, tag := range d.world.Advance(dt) {
		d.app.OnAnimationEvent(tag)
	}
	d.elapsed += dt
}

// Run advances by seconds in fixed steps; a partial last step is kept.
func (d *Driver) Run(seconds float64) {
	for seconds > 1e-9 {
		dt := min(d.step, seconds)
		d.Advance(dt)
		seconds -= dt
	}
}

func (d *Driver) remember(ev input.Event) {
	d.history = append(d.history, ev)
	if n := len(d.history) - historySize; n > 0 {
		d.history = append(d.history[:0], d.history[n:]...)
	}
}

// History returns the latest attack and synthetic events that reached
// the engine, oldest first.
func (d *Driver) History() []input.Event {
	return append([]input.Event(nil), d.history...)
}

// ClearHistory forgets the remembered events.
func (d *Driver) ClearHistory() {
	d.history = d.history[:0]
}

// AnimationEvent injects an animation tag.
func (d *Driver) AnimationEvent(tag string) bool {
	return d.app.OnAnimationEvent(tag)
}

// Power activates a power.
func (d *Driver) Power(p game.Power) {
	d.app.OnPowerActivated(p)
}

// Phase returns the controller phase.
func (d *Driver) Phase() bowmode.Phase {
	return d.app.Controller().Phase()
}

// SetDrawn draws or sheathes the player's weapons.
func (d *Driver) SetDrawn(v bool) {
	d.world.Actor().SetWeaponDrawn(v)
}

// SetCombat toggles the combat flag.
func (d *Driver) SetCombat(v bool) {
	d.world.Actor().SetInCombat(v)
}

// Loadout reports the player's hands and ammo by display name.
func (d *Driver) Loadout() Loadout {
	a := d.world.Actor()
	empty := d.app.Strings().Get(catalog.KeyEmpty)
	name := func(r game.Ref, ok bool) string {
		if !ok {
			return empty
		}
		if it, found := a.Item(r); found {
			return it.DisplayName()
		}
		return empty
	}
	return Loadout{
		Right:  name(a.Equipped(game.SlotRight)),
		Left:   name(a.Equipped(game.SlotLeft)),
		Ammo:   name(a.EquippedAmmo()),
		Drawn:  a.IsWeaponDrawn(),
		Combat: a.IsInCombat(),
	}
}

// Find returns the first inventory item whose base name matches name,
// ignoring case.
func (d *Driver) Find(name string) (game.Item, bool) {
	name = strings.TrimSpace(name)
	for _, it := range d.world.Actor().Inventory(nil) {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return game.Item{}, false
}

// Equip puts the named item into slot without an animation.
func (d *Driver) Equip(name string, slot game.Slot) error {
	it, ok := d.Find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	d.world.Manager().Equip(d.world.Actor(), it.Ref, slot, game.FlagsImmediate)
	return nil
}

// Choose makes the named bow the chosen bow.
func (d *Driver) Choose(name string) error {
	it, ok := d.Find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	return d.app.SetChosenBow(it.Ref)
}

// SetMode changes the hotkey mode.
func (d *Driver) SetMode(m bowmode.Mode) error {
	return d.app.SetMode(m)
}

// Status returns the controller's runtime snapshot.
func (d *Driver) Status() bowmode.Status {
	return d.app.Status()
}
