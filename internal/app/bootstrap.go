package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/catalog"
	"github.com/dshills/quickdraw/internal/config"
	"github.com/dshills/quickdraw/internal/config/watcher"
	"github.com/dshills/quickdraw/internal/equip"
	"github.com/dshills/quickdraw/internal/event"
	"github.com/dshills/quickdraw/internal/input"
	"github.com/dshills/quickdraw/internal/input/hotkey"
	"github.com/dshills/quickdraw/internal/prefs"
	"github.com/dshills/quickdraw/internal/schedule"
)

// bootstrapper initializes components in dependency order and unwinds on
// failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(a *Application) *bootstrapper {
	return &bootstrapper{app: a, opts: a.opts, initOrder: make([]string, 0, 6)}
}

func (b *bootstrapper) bootstrap() error {
	b.app.log = WithComponent(b.opts.Logger, "app")
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"catalog", b.initCatalog},
		{"prefs", b.initPrefs},
		{"core", b.initCore},
		{"watcher", b.initWatcher},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			b.cleanup()
			return &InitError{Component: s.name, Err: err}
		}
		b.initOrder = append(b.initOrder, s.name)
	}
	return nil
}

func (b *bootstrapper) logger(component string) zerolog.Logger {
	return WithComponent(b.opts.Logger, component)
}

func (b *bootstrapper) initConfig() error {
	opts := []config.StoreOption{config.WithStoreLogger(b.logger("config"))}
	if b.opts.Env != nil {
		opts = append(opts, config.WithEnv(b.opts.Env))
	}
	b.app.store = config.NewStore(b.opts.ConfigPath, opts...)
	warnings, err := b.app.store.Load()
	if err != nil {
		// A broken file never stops startup; the defaults stand.
		b.app.log.Warn().Err(err).Msg("config not loaded, using defaults")
	}
	if len(warnings) > 0 {
		b.app.log.Info().Int("fields", len(warnings)).Msg("config fields reset to defaults")
	}
	return nil
}

func (b *bootstrapper) initCatalog() error {
	strs := catalog.DefaultStrings()
	if b.opts.StringsPath != "" {
		var err error
		if strs, err = catalog.LoadStrings(b.opts.StringsPath); err != nil {
			return err
		}
	}
	b.app.strings = strs

	if b.opts.HiddenPath != "" {
		hidden, err := catalog.LoadHidden(b.opts.HiddenPath)
		if err != nil {
			return err
		}
		b.app.hidden = hidden
	}
	return nil
}

func (b *bootstrapper) initPrefs() error {
	b.app.prefs = prefs.New(b.opts.PrefsPath, prefs.WithLogger(b.logger("prefs")))
	if err := b.app.prefs.Load(); err != nil {
		b.app.log.Warn().Err(err).Msg("prefs not loaded, starting empty")
	}
	return nil
}

func (b *bootstrapper) initCore() error {
	a := b.app
	epoch := b.opts.Epoch
	if epoch.IsZero() {
		epoch = time.Now()
	}
	a.clock = epoch
	a.sched = schedule.New(epoch)
	a.input = input.NewState()
	a.synth = input.NewSyntheticQueue()
	a.detector = hotkey.NewDetector()
	a.hub = event.NewHub(
		event.WithClock(a.Now),
		event.WithPanicHandler(func(listener, recovered any) {
			a.log.Error().Interface("panic", recovered).Type("listener", listener).Msg("listener panicked")
		}),
	)

	tagger := equip.NewTagger(a.strings.Get(catalog.KeyChosenSuffix))
	a.controller = bowmode.New(a.world, a.synth, a.sched,
		bowmode.WithLogger(b.logger("bowmode")),
		bowmode.WithTagger(tagger),
		bowmode.WithSuppressor(a.detector),
	)
	a.controller.OnPhaseChange(func(from, to bowmode.Phase) {
		a.hub.Notify(event.TopicPhase, event.PhaseChange{From: from.String(), To: to.String()})
	})
	if _, err := a.hub.Register(a.controller); err != nil {
		return err
	}

	a.cfg = config.Default()
	a.apply(a.store.Get())
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}
	a := b.app
	w := watcher.New(watcher.WithErrorHandler(func(err error) {
		a.log.Warn().Err(err).Msg("config watcher")
	}))
	err := a.store.Watch(w, func(cfg config.Config) {
		// Runs on the watcher goroutine; hop to the tick.
		a.sched.Post(func() {
			a.apply(cfg)
			a.hub.Notify(event.TopicConfigReloaded, cfg)
		})
	})
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// cleanup releases what was built before a failed step.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "config":
			if b.app.store != nil {
				b.app.store.Close()
			}
		}
	}
}
