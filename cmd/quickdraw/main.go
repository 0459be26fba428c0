// Package main is the entry point for the quickdraw harness. It runs the
// bow mode core against a simulated player, either interactively in the
// terminal or headless with a Lua scenario script.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/app"
	"github.com/dshills/quickdraw/internal/game"
	"github.com/dshills/quickdraw/internal/script"
	"github.com/dshills/quickdraw/internal/sim"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts       app.Options
	scriptPath string
	logLevel   string
	logFile    string
	save       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	logOut, closeLog, err := openLog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	f.opts.Logger = app.NewLogger(app.LoggerConfig{
		Level:   app.ParseLogLevel(f.logLevel),
		Output:  logOut,
		Console: f.scriptPath != "",
	})

	world := sim.NewWorld()
	kit := sim.PopulateSample(world.Actor())
	f.opts.World = world

	application, err := app.New(f.opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	if err := application.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	application.OnGameLoaded(f.save)
	if f.scriptPath == "" {
		dressPlayer(world, kit)
		if application.Controller().Settings().ChosenBow == game.NoForm {
			if err := application.SetChosenBow(kit.HuntingBow); err != nil {
				f.opts.Logger.Warn().Err(err).Msg("no default bow")
			}
		}
	}

	driver := app.NewDriver(application, world)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if f.scriptPath != "" {
		r := script.New(driver, script.WithLogger(app.WithComponent(f.opts.Logger, "script")))
		if err := r.RunFile(ctx, f.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runInteractive(ctx, driver); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.save != "" {
		if err := application.OnGameSaved(f.save); err != nil {
			fmt.Fprintf(os.Stderr, "Error: preferences not saved: %v\n", err)
			return 1
		}
	}
	return 0
}

// dressPlayer gives the interactive player a sword, a shield and arrows.
func dressPlayer(w *sim.World, kit sim.Sample) {
	em, a := w.Manager(), w.Actor()
	em.Equip(a, kit.Sword, game.SlotRight, game.FlagsImmediate)
	em.Equip(a, kit.Shield, game.SlotDefault, game.FlagsImmediate)
	em.Equip(a, kit.IronArrows, game.SlotDefault, game.FlagsImmediate)
	em.ResetCalls()
}

// openLog picks the log destination. The interactive view owns the
// terminal, so it logs to a file or nowhere.
func openLog(f flags) (io.Writer, func(), error) {
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return file, func() { file.Close() }, nil
	}
	if f.scriptPath != "" {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to the TOML configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to the TOML configuration file (shorthand)")
	flag.StringVar(&f.opts.PrefsPath, "prefs", "", "Path to the per-save preferences file")
	flag.StringVar(&f.opts.StringsPath, "strings", "", "Path to a YAML string table")
	flag.StringVar(&f.opts.HiddenPath, "hidden", "", "Path to the YAML hidden item list")
	flag.BoolVar(&f.opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&f.scriptPath, "script", "", "Run a Lua scenario script instead of the interactive view")
	flag.StringVar(&f.scriptPath, "s", "", "Run a Lua scenario script (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error, off)")
	flag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&f.save, "save", "", "Save name whose preferences are loaded and stored")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quickdraw - bow hotkey core harness\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quickdraw [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quickdraw -c quickdraw.toml -watch      Interactive view with live config\n")
		fmt.Fprintf(os.Stderr, "  quickdraw -s scripts/hold.lua           Run a scenario headless\n")
		fmt.Fprintf(os.Stderr, "  quickdraw -prefs prefs.json -save Save1 Remember choices per save\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("quickdraw %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch f.logLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error, or off)\n", f.logLevel)
		os.Exit(1)
	}

	if f.opts.Watch && f.opts.ConfigPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch needs -config\n")
		os.Exit(1)
	}

	f.opts.Logger = zerolog.Nop()
	return f
}
