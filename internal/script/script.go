package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quickdraw/internal/app"
	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/input"
)

// Limits for a single run.
const (
	DefaultTimeout = 5 * time.Second
	// MaxTick caps one tick() call, in seconds of game time.
	MaxTick = 600.0
)

// Host is what a script drives. *app.Driver implements it.
type Host interface {
	Press(dev input.Device, code int)
	Release(dev input.Device, code int)
	Run(seconds float64)
	AnimationEvent(tag string) bool
	Power(p game.Power)
	Phase() bowmode.Phase
	Status() bowmode.Status
	Loadout() app.Loadout
	SetDrawn(v bool)
	SetCombat(v bool)
	SetMode(m bowmode.Mode) error
	Equip(name string, slot game.Slot) error
	Choose(name string) error
}

// Runner executes scripts against a host.
type Runner struct {
	host    Host
	log     zerolog.Logger
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that log() writes to.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithTimeout bounds the wall-clock time of one run; zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// New creates a Runner for host.
func New(host Host, opts ...Option) *Runner {
	r := &Runner{host: host, log: zerolog.Nop(), timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return &Error{Script: path, Err: err}
	}
	return r.Run(ctx, path, string(code))
}

// Run executes code in a fresh sandboxed interpreter. name labels errors
// and log lines.
func (r *Runner) Run(ctx context.Context, name, code string) (err error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	api := &api{host: r.host, log: r.log.With().Str("script", name).Logger()}
	api.install(L)

	defer func() {
		if p := recover(); p != nil {
			err = &Error{Script: name, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	start := time.Now()
	if runErr := L.DoString(code); runErr != nil {
		switch {
		case ctx.Err() != nil:
			runErr = fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		case api.failed != "":
			runErr = fmt.Errorf("%w: %s", ErrExpectation, api.failed)
		}
		return &Error{Script: name, Err: runErr}
	}
	r.log.Debug().
		Str("script", name).
		Int("expectations", api.checks).
		Dur("took", time.Since(start)).
		Msg("script finished")
	return nil
}

// newState opens the safe libraries only.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// IsTimeout reports whether err came from a script deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
