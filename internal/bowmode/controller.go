package bowmode

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/equip"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
	"github.com/dshills/quickdraw/internal/schedule"
)

// Scheduler job keys.
const (
	jobSkipAnimation = "bowmode.skip-animation"
	jobSheathe       = "bowmode.sheathe"
)

// Suppressor is the part of the hotkey detector the controller needs after a
// forced exit.
type Suppressor interface {
	SuppressUntilReleased()
}

// Controller is the bow-mode state machine.
type Controller struct {
	world  game.World
	synth  *input.SyntheticQueue
	sched  *schedule.Scheduler
	state  *equip.State
	tagger equip.Tagger
	log    zerolog.Logger

	suppressor Suppressor
	callbacks  []PhaseChangeCallback

	settings Settings
	phase    Phase

	// style is the behaviour of the current session. Smart sessions run
	// as Hold once the threshold is crossed.
	style Mode

	hotkeyDown  bool
	bowEquipped bool
	wasDrawn    bool
	pumpArmed   bool
	sheathing   bool

	// swallowAttack eats the rest of a real attack press that was spent
	// cancelling an exit.
	swallowAttack bool

	smart  smartState
	exit   exitState
	attack attackHold
	tap    postExitTap
	gate   unequipGate
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(c *Controller) {
		c.settings = s.normalized()
	}
}

// WithEquipState shares an existing chosen-bow and loadout record.
func WithEquipState(s *equip.State) Option {
	return func(c *Controller) {
		if s != nil {
			c.state = s
		}
	}
}

// WithTagger sets the chosen-marker tagger.
func WithTagger(t equip.Tagger) Option {
	return func(c *Controller) {
		c.tagger = t
	}
}

// WithSuppressor sets the detector latch armed by ForceImmediateExit.
func WithSuppressor(s Suppressor) Option {
	return func(c *Controller) {
		c.suppressor = s
	}
}

// New creates an idle controller. Synthetic events go to synth and deferred
// work to sched; the scheduler's clock is the controller's clock.
func New(world game.World, synth *input.SyntheticQueue, sched *schedule.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		world:    world,
		synth:    synth,
		sched:    sched,
		state:    equip.NewState(),
		tagger:   equip.NewTagger(equip.DefaultMarker),
		log:      zerolog.Nop(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gate.enabled.Store(c.settings.BlockUnequip)
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Settings returns the current settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// EquipState returns the chosen-bow and loadout record.
func (c *Controller) EquipState() *equip.State {
	return c.state
}

// Tagger returns the chosen-marker tagger.
func (c *Controller) Tagger() equip.Tagger {
	return c.tagger
}

// OnPhaseChange registers a callback for phase transitions.
func (c *Controller) OnPhaseChange(cb PhaseChangeCallback) {
	c.callbacks = append(c.callbacks, cb)
}

// Status returns a snapshot of the transient state.
func (c *Controller) Status() Status {
	return Status{
		Phase:        c.phase,
		Mode:         c.settings.Mode,
		Style:        c.style,
		HotkeyDown:   c.hotkeyDown,
		BowEquipped:  c.bowEquipped,
		SmartPending: c.smart.pending,
		SmartHeld:    c.smart.held,
		Pumping:      c.attack.active,
		PumpHeld:     c.attack.held,
		ExitPending:  c.exit.pending,
		WaitForEquip: c.exit.waitForEquip,
		ExitDelay:    c.exit.delay,
		ExitElapsed:  c.exit.elapsed,
		TapArmed:     c.tap.stage != tapNone,
		Sheathing:    c.sheathing,
	}
}

// SetSettings replaces the settings. A mode change drops any half-decided
// Smart press and stops the pump; an active session keeps running.
func (c *Controller) SetSettings(s Settings) {
	s = s.normalized()
	if s.Mode != c.settings.Mode {
		c.resetHotkeyRuntime()
	}
	c.settings = s
	c.gate.enabled.Store(s.BlockUnequip)
}

// SetMode changes the hotkey mode.
func (c *Controller) SetMode(m Mode) {
	s := c.settings
	s.Mode = m
	c.SetSettings(s)
}

// ResetHotkeyRuntime forgets the hotkey's held state. Hosts call it when the
// bindings change, together with resetting the detector.
func (c *Controller) ResetHotkeyRuntime() {
	c.resetHotkeyRuntime()
}

func (c *Controller) resetHotkeyRuntime() {
	c.stopPump()
	c.smart = smartState{}
	c.hotkeyDown = false
}

// ChooseBow makes the inventory item r the chosen bow.
func (c *Controller) ChooseBow(r game.Ref) error {
	if c.phase != PhaseIdle {
		return ErrNotIdle
	}
	a := c.world.Player()
	if a == nil {
		return equip.ErrNoCollaborator
	}
	it, ok := equip.Lookup(a, r)
	if !ok {
		return equip.ErrNoChosenBow
	}
	if err := equip.Choose(a, c.state, c.tagger, it); err != nil {
		return err
	}
	c.settings.ChosenBow = it.Base
	c.log.Info().Str("bow", it.Ref.String()).Str("name", it.Name).Msg("chosen bow set")
	return nil
}

// ClearChosenBow forgets the chosen bow and strips its marker.
func (c *Controller) ClearChosenBow() error {
	if c.phase != PhaseIdle {
		return ErrNotIdle
	}
	if c.state.Chosen.IsZero() && c.settings.ChosenBow != game.NoForm {
		c.state.Chosen = game.Ref{Base: c.settings.ChosenBow}
	}
	equip.Unchoose(c.world.Player(), c.state, c.tagger)
	c.settings.ChosenBow = game.NoForm
	return nil
}

// ToggleChosenBow chooses r, or clears the choice when r is already the
// chosen instance. It reports whether r is chosen afterwards.
func (c *Controller) ToggleChosenBow(r game.Ref) (bool, error) {
	if c.phase == PhaseIdle && !c.state.Chosen.IsZero() && c.state.Chosen.Same(r) {
		return false, c.ClearChosenBow()
	}
	return true, c.ChooseBow(r)
}

// RetagChosenBow finds the chosen bow again after a game load: the
// remembered instance, else a tagged one, else the first copy. The marker
// ends up on that instance only.
func (c *Controller) RetagChosenBow() (game.Item, error) {
	if c.phase != PhaseIdle {
		return game.Item{}, ErrNotIdle
	}
	base := c.settings.ChosenBow
	if base == game.NoForm {
		return game.Item{}, equip.ErrNoChosenBow
	}
	a := c.world.Player()
	if a == nil {
		return game.Item{}, equip.ErrNoCollaborator
	}
	if c.state.Chosen.Base != base {
		c.state.Chosen = game.Ref{Base: base}
	}
	it, src, err := equip.ResolveChosen(a, c.state, c.tagger)
	if err != nil {
		return game.Item{}, err
	}
	c.tagger.Tag(a, it)
	if n := equip.UntagOthers(a, c.tagger, it.Ref); n > 0 {
		c.log.Debug().Int("count", n).Msg("stale chosen markers removed")
	}
	c.log.Info().Str("bow", it.Ref.String()).Str("resolved", src.String()).Msg("chosen bow re-tagged")
	return it, nil
}

// SetTagger swaps the marker text, re-tagging the chosen bow.
func (c *Controller) SetTagger(t equip.Tagger) {
	if a := c.world.Player(); a != nil && !c.state.Chosen.IsZero() {
		if it, ok := equip.Lookup(a, c.state.Chosen); ok {
			c.tagger.Untag(a, it)
			if it, ok = equip.Lookup(a, it.Ref); ok {
				t.Tag(a, it)
			}
		}
	}
	c.tagger = t
}

// OnHotkeyAcceptedPressed handles a rising acceptance edge.
func (c *Controller) OnHotkeyAcceptedPressed() {
	c.hotkeyDown = true

	switch c.settings.Mode {
	case ModeHold:
		switch c.phase {
		case PhaseIdle:
			c.enter(ModeHold)
		case PhaseExitPending:
			c.cancelExit()
		}
	case ModePress:
		switch c.phase {
		case PhaseIdle:
			c.enter(ModePress)
		case PhaseActive:
			c.beginExit(0, !c.bowEquipped)
		}
	case ModeSmart:
		switch c.phase {
		case PhaseIdle, PhaseExitPending:
			c.smart = smartState{pending: true}
		}
	}
}

// OnHotkeyAcceptedReleased handles a falling acceptance edge.
func (c *Controller) OnHotkeyAcceptedReleased() {
	c.hotkeyDown = false
	c.stopPump()
	c.pumpArmed = false

	switch c.settings.Mode {
	case ModeHold:
		if c.phase == PhaseActive {
			c.beginExit(c.settings.SheatheDelay.Seconds(), !c.bowEquipped)
		}
	case ModeSmart:
		if c.smart.pending {
			c.smart = smartState{}
			if c.phase == PhaseExitPending {
				c.log.Debug().Msg("tap during grace period, exiting now")
				c.completeExit()
			}
			return
		}
		if c.phase == PhaseActive && c.style == ModeHold {
			c.beginExit(c.settings.SheatheDelay.Seconds(), !c.bowEquipped)
		}
	}
}

// Tick advances every timer by dt seconds. The scheduler must already have
// been polled for this tick.
func (c *Controller) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.tickSmart(dt)
	c.tickExit(dt)
	c.tickPump(dt)
	c.tickTap(dt)
}

func (c *Controller) tickSmart(dt float64) {
	if !c.smart.pending {
		return
	}
	c.smart.held += dt
	if c.smart.held < c.settings.SmartThreshold.Seconds() {
		return
	}
	c.smart = smartState{}
	switch c.phase {
	case PhaseIdle:
		c.enter(ModeHold)
	case PhaseExitPending:
		c.cancelExit()
	}
}

func (c *Controller) tickExit(dt float64) {
	if !c.exit.pending || c.phase != PhaseExitPending {
		return
	}
	// An undecided Smart press holds the exit until it turns out to be a
	// tap (exit now) or a hold (cancel).
	if c.smart.pending {
		return
	}
	if c.exit.waitForEquip {
		if !c.bowEquipped {
			c.exit.equipWait += dt
			if c.exit.equipWait < c.settings.MaxEquipWait.Seconds() {
				return
			}
			c.log.Debug().Float64("waited", c.exit.equipWait).Msg("bow equip never confirmed, exiting anyway")
		}
		c.exit.waitForEquip = false
	} else {
		c.exit.elapsed += dt
	}
	if c.exit.elapsed >= c.exit.delay {
		c.completeExit()
	}
}

func (c *Controller) tickPump(dt float64) {
	if !c.attack.active {
		return
	}
	c.attack.held += dt
	c.synth.Push(input.NewAttackEvent(1, float32(c.attack.held)))
}

func (c *Controller) tickTap(dt float64) {
	now := c.sched.Now()
	switch c.tap.stage {
	case tapArmed:
		if now.Before(c.tap.pressAt) {
			return
		}
		c.synth.Push(input.NewAttackEvent(1, 0))
		c.tap.stage = tapHolding
		c.tap.releaseAt = now.Add(postTapHold)
		c.tap.held = 0
	case tapHolding:
		c.tap.held += dt
		if now.Before(c.tap.releaseAt) {
			c.synth.Push(input.NewAttackEvent(1, float32(c.tap.held)))
			return
		}
		c.synth.Push(input.NewAttackEvent(0, float32(max(c.tap.held, postTapHold.Seconds()))))
		c.tap.stage = tapReleased
	case tapReleased:
		c.tap = postExitTap{}
	}
}

// OnAnimationEvent reacts to a player animation tag. It reports whether the
// tag was used.
func (c *Controller) OnAnimationEvent(tag string) bool {
	switch tag {
	case game.TagEquipComplete:
		if c.phase != PhaseActive && c.phase != PhaseExitPending {
			return false
		}
		c.bowEquipped = true
		if c.pumpArmed && c.hotkeyDown && c.phase == PhaseActive {
			c.startPump()
		}
		return true
	case game.TagSheatheComplete:
		if !c.sheathing || c.phase != PhaseRestoring {
			return false
		}
		c.finishRestore()
		return true
	case game.TagBowReset:
		if !c.attack.active {
			return false
		}
		c.stopPump()
		c.pumpArmed = false
		return true
	}
	return false
}

// InterceptAttack sees every real input event before the engine does and
// reports whether it must be dropped. An attack press during a Hold-style
// grace period cancels the wait, restores at once and replays the attack as
// a synthetic tap against the restored weapon.
func (c *Controller) InterceptAttack(ev input.Event) bool {
	if ev.Synthetic || !ev.IsAttack() {
		return false
	}
	if c.swallowAttack {
		if !ev.IsPressed() {
			c.swallowAttack = false
		}
		return true
	}
	if !ev.IsDown() || c.phase != PhaseExitPending {
		return false
	}
	if c.style != ModeHold || !c.settings.AutoDraw || c.exit.delay <= 0 {
		return false
	}

	c.log.Debug().Str("event", ev.String()).Msg("attack during grace period")
	if !c.restoreNow() {
		return false
	}
	c.tap = postExitTap{stage: tapArmed, pressAt: c.sched.Now().Add(postTapDelay)}
	c.swallowAttack = true
	return true
}

// OnPowerActivated handles a lesser/greater power. Transformations end bow
// mode at once.
func (c *Controller) OnPowerActivated(p game.Power) {
	if p.IsTransformation() {
		c.log.Info().Str("power", p.String()).Msg("transformation, dropping bow mode")
		c.ForceImmediateExit()
	}
}

// ForceImmediateExit returns to Idle without touching the equip manager and
// forgets the chosen bow instance and the saved loadout. The hotkey is
// ignored until it is released.
func (c *Controller) ForceImmediateExit() {
	if c.attack.active {
		c.synth.Push(input.NewAttackEvent(0, float32(max(c.attack.held, MinReleaseHeld))))
	}
	c.sched.Cancel(jobSheathe)
	c.state.Reset()
	c.resetSession()
	c.tap = postExitTap{}
	c.smart = smartState{}
	c.hotkeyDown = false
	c.swallowAttack = false
	c.gate.open()
	if c.suppressor != nil {
		c.suppressor.SuppressUntilReleased()
	}
	c.setPhase(PhaseIdle)
}

// AllowUnequip reports whether the engine may unequip r right now. It is
// safe to call from any goroutine.
func (c *Controller) AllowUnequip(r game.Ref) bool {
	return c.gate.allows(r, c.sched.Now())
}

func (c *Controller) enter(style Mode) bool {
	a := c.world.Player()
	em := c.world.EquipManager()
	if a == nil || em == nil {
		c.log.Debug().Msg("player or equip manager missing, entry skipped")
		return false
	}

	if c.state.Chosen.IsZero() && c.settings.ChosenBow != game.NoForm {
		c.state.Chosen = game.Ref{Base: c.settings.ChosenBow}
	}
	bow, src, err := equip.ResolveChosen(a, c.state, c.tagger)
	if err != nil {
		if errors.Is(err, equip.ErrNoChosenBow) {
			c.log.Info().Str("bow", c.settings.ChosenBow.String()).Msg("chosen bow not in inventory")
		}
		return false
	}
	if right, ok := a.Equipped(game.SlotRight); ok && right.Same(bow.Ref) {
		c.log.Debug().Str("bow", bow.Ref.String()).Msg("chosen bow already in hand")
		return false
	}

	c.setPhase(PhaseEquipping)
	c.state.CapturePrevious(a)
	c.wasDrawn = a.IsWeaponDrawn()
	before := equip.CaptureWornArmorSnapshot(a)

	if c.settings.SkipEquipAnimation {
		a.SetGraphVariableBool(GraphSkipEquipAnimation, true)
		c.sched.After(jobSkipAnimation, SkipAnimationWindow, func() {
			if p := c.world.Player(); p != nil {
				p.SetGraphVariableBool(GraphSkipEquipAnimation, false)
			}
		})
	}

	c.gate.close(bow.Ref)
	em.Equip(a, bow.Ref, game.SlotRight, game.FlagsAudible)
	c.equipPreferredArrow(a, em)

	c.state.TrackArmor(equip.DiffArmorSnapshot(before, equip.CaptureWornArmorSnapshot(a))...)
	if c.settings.HideItems {
		if hidden := equip.ApplyHiddenItemsPatch(a, em, c.settings.Hidden, c.state); len(hidden) > 0 {
			c.log.Debug().Int("count", len(hidden)).Msg("hid worn items")
		}
	}

	c.style = style
	c.bowEquipped = false
	c.pumpArmed = style == ModeHold && c.settings.AutoDraw
	if c.settings.AutoDraw && !a.IsWeaponDrawn() {
		a.SetWeaponDrawn(true)
	}

	c.log.Info().
		Str("bow", bow.Ref.String()).
		Str("resolved", src.String()).
		Str("style", style.String()).
		Msg("bow mode entered")
	c.setPhase(PhaseActive)
	return true
}

func (c *Controller) equipPreferredArrow(a game.Actor, em game.EquipManager) {
	pref := c.settings.PreferredArrow
	if pref == game.NoForm {
		return
	}
	if cur, ok := a.EquippedAmmo(); ok && cur.Base == pref {
		return
	}
	ammo, ok := equip.Lookup(a, game.Ref{Base: pref})
	if !ok || ammo.Kind != game.KindAmmo {
		return
	}
	em.Equip(a, ammo.Ref, game.SlotDefault, game.FlagsImmediate)
}

// beginExit schedules an exit. A zero delay without an equip wait exits
// right away.
func (c *Controller) beginExit(delay float64, waitForEquip bool) {
	c.exit = exitState{pending: true, waitForEquip: waitForEquip, delay: delay}
	if delay <= 0 && !waitForEquip {
		c.completeExit()
		return
	}
	c.setPhase(PhaseExitPending)
}

func (c *Controller) cancelExit() {
	c.exit = exitState{}
	c.setPhase(PhaseActive)
	if c.style == ModeHold && c.settings.AutoDraw && c.hotkeyDown {
		c.pumpArmed = true
		if c.bowEquipped {
			c.startPump()
		}
	}
}

// completeExit starts restoration, sheathing first when the player was not
// drawn before entry and is not fighting.
func (c *Controller) completeExit() {
	c.stopPump()
	a := c.world.Player()
	if a == nil || c.world.EquipManager() == nil {
		// Retry on the next tick.
		c.exit = exitState{pending: true}
		c.setPhase(PhaseExitPending)
		return
	}
	c.exit = exitState{}
	c.setPhase(PhaseRestoring)

	if !c.wasDrawn && !a.IsInCombat() && a.IsWeaponDrawn() {
		c.sheathing = true
		a.SetWeaponDrawn(false)
		c.sched.After(jobSheathe, SheatheFallback, c.finishRestore)
		return
	}
	c.finishRestore()
}

// restoreNow restores without sheathing.
func (c *Controller) restoreNow() bool {
	if c.world.Player() == nil || c.world.EquipManager() == nil {
		return false
	}
	c.exit = exitState{}
	c.stopPump()
	c.setPhase(PhaseRestoring)
	c.finishRestore()
	return true
}

func (c *Controller) finishRestore() {
	if c.phase != PhaseRestoring {
		return
	}
	c.sched.Cancel(jobSheathe)
	a := c.world.Player()
	em := c.world.EquipManager()
	if a == nil || em == nil {
		c.sched.After(jobSheathe, SheatheFallback, c.finishRestore)
		return
	}

	rep, err := equip.Restore(a, em, c.state, equip.RestoreOptions{
		Bow:            c.state.Chosen,
		PreferredArrow: c.settings.PreferredArrow,
		Flags:          game.FlagsImmediate,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("restore failed")
	} else {
		ev := c.log.Info().
			Str("right", rep.Right.String()).
			Str("left", rep.Left.String()).
			Bool("unequip_bow", rep.UnequipBow).
			Int("armor", len(rep.Armor))
		if len(rep.Missing) > 0 {
			ev = ev.Int("missing", len(rep.Missing))
		}
		ev.Msg("loadout restored")
	}

	c.gate.reopen(c.sched.Now().Add(UnequipReenable))
	c.resetSession()
	c.setPhase(PhaseIdle)
}

func (c *Controller) startPump() {
	if c.attack.active {
		return
	}
	c.attack = attackHold{active: true}
	c.synth.Push(input.NewAttackEvent(1, 0))
}

// stopPump ends the pump with one release event.
func (c *Controller) stopPump() {
	if !c.attack.active {
		return
	}
	c.synth.Push(input.NewAttackEvent(0, float32(max(c.attack.held, MinReleaseHeld))))
	c.attack = attackHold{}
}

func (c *Controller) resetSession() {
	c.exit = exitState{}
	c.attack = attackHold{}
	c.style = ModeHold
	c.bowEquipped = false
	c.wasDrawn = false
	c.pumpArmed = false
	c.sheathing = false
}

func (c *Controller) setPhase(p Phase) {
	if p == c.phase {
		return
	}
	from := c.phase
	c.phase = p
	c.log.Debug().Str("from", from.String()).Str("to", p.String()).Msg("phase")
	for _, cb := range c.callbacks {
		cb(from, p)
	}
}

// Now returns the controller's clock.
func (c *Controller) Now() time.Time {
	return c.sched.Now()
}
