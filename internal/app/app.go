// Package app wires the quick-draw core into one explicit context: input
// state, hotkey detector, bow mode controller, scheduler, event hub and
// the persisted stores. ProcessInput is the single per-poll entry point;
// everything else is a setter or an engine hook.
//
// All methods except Start, Shutdown and the config reload path must be
// called from the game-logic goroutine.
package app

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/catalog"
	"github.com/dshills/quickdraw/internal/config"
	"github.com/dshills/quickdraw/internal/config/watcher"
	"github.com/dshills/quickdraw/internal/event"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
	"github.com/dshills/quickdraw/internal/input/hotkey"
	"github.com/dshills/quickdraw/internal/prefs"
	"github.com/dshills/quickdraw/internal/schedule"
)

// Options configures the application.
type Options struct {
	// World supplies the player and equip manager. Required.
	World game.World

	// ConfigPath is the TOML config file. Empty keeps config in memory.
	ConfigPath string

	// PrefsPath is the per-save preferences JSON file.
	PrefsPath string

	// StringsPath and HiddenPath are the YAML catalog tables.
	StringsPath string
	HiddenPath  string

	// Watch reloads the config file when it changes on disk.
	Watch bool

	// Env replaces the process environment for QUICKDRAW_ overrides.
	Env []string

	// Epoch is the scheduler's starting time. Zero means time.Now().
	Epoch time.Time

	Logger zerolog.Logger
}

// Application is the explicit context that replaces process-wide
// singletons. One is built per game session.
type Application struct {
	opts Options
	log  zerolog.Logger

	world      game.World
	input      *input.State
	capture    input.Capture
	synth      *input.SyntheticQueue
	detector   *hotkey.Detector
	controller *bowmode.Controller
	sched      *schedule.Scheduler
	hub        *event.Hub

	store   *config.Store
	watcher *watcher.Watcher
	prefs   *prefs.Store
	strings *catalog.Strings
	hidden  []game.FormID

	cfg     config.Config
	hotkeys hotkey.Config
	clock   time.Time

	// save is the normalized key of the loaded save; override holds its
	// remembered choices.
	save     string
	override *prefs.Entry

	menuOpen atomic.Bool
	running  atomic.Bool
}

// New builds and wires every component. The config, catalog and prefs
// files are read here; a missing file is not an error.
func New(opts Options) (*Application, error) {
	if opts.World == nil {
		return nil, ErrNoWorld
	}
	a := &Application{opts: opts, world: opts.World}
	if err := newBootstrapper(a).bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// Start begins watching the config file when Options.Watch is set.
func (a *Application) Start() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.running.Store(false)
			return &InitError{Component: "watcher", Err: err}
		}
	}
	a.log.Info().Str("config", a.store.Path()).Bool("watch", a.watcher != nil).Msg("quickdraw started")
	return nil
}

// Shutdown stops the watcher and drops subscriptions. Bow mode is left
// as is; the host decides whether to ForceExit first.
func (a *Application) Shutdown() error {
	if !a.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	var err error
	if a.watcher != nil {
		err = a.watcher.Stop()
	}
	a.store.Close()
	a.log.Info().Msg("quickdraw stopped")
	return err
}

// Controller returns the bow mode controller.
func (a *Application) Controller() *bowmode.Controller {
	return a.controller
}

// Hub returns the event hub.
func (a *Application) Hub() *event.Hub {
	return a.hub
}

// Scheduler returns the tick scheduler.
func (a *Application) Scheduler() *schedule.Scheduler {
	return a.sched
}

// Store returns the config store.
func (a *Application) Store() *config.Store {
	return a.store
}

// Prefs returns the per-save preference store.
func (a *Application) Prefs() *prefs.Store {
	return a.prefs
}

// Strings returns the display string table.
func (a *Application) Strings() *catalog.Strings {
	return a.strings
}

// Config returns the config currently applied to the core.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Hotkeys returns the active bindings.
func (a *Application) Hotkeys() hotkey.Config {
	return a.hotkeys
}

// Input returns the held-button state.
func (a *Application) Input() *input.State {
	return a.input
}

// Now returns the core's clock.
func (a *Application) Now() time.Time {
	return a.clock
}

// Status returns the controller snapshot.
func (a *Application) Status() bowmode.Status {
	return a.controller.Status()
}

// Register attaches a listener by capability: any of event.InputSink,
// event.AnimationSink or event.NoticeSink (for every topic).
func (a *Application) Register(listener any) ([]event.Subscription, error) {
	return a.hub.Register(listener)
}
