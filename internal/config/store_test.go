package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/bowmode"
	"github.com/dshills/quickdraw/internal/config/loader"
	"github.com/dshills/quickdraw/internal/config/notify"
	"github.com/dshills/quickdraw/internal/config/watcher"
)

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStoreMissingFileKeepsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none.toml"), WithEnv(nil))
	warnings, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Default(), s.Get())
}

func TestStoreEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickdraw.toml")
	writeFile(t, path, "[hotkey]\nmode = \"press\"\n[bow]\nauto_draw = false\n")

	s := NewStore(path, WithEnv([]string{"QUICKDRAW_HOTKEY_MODE=smart", "QUICKDRAW_BOW_SHEATHE_DELAY=0.5"}))
	_, err := s.Load()
	require.NoError(t, err)

	c := s.Get()
	assert.Equal(t, bowmode.ModeSmart, c.Mode)
	assert.False(t, c.AutoDraw)
	assert.InDelta(t, 0.5, c.SheatheDelay, 1e-9)
}

func TestStoreParseErrorKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickdraw.toml")
	writeFile(t, path, "[hotkey]\nmode = \"press\"\n")
	s := NewStore(path, WithEnv(nil))
	_, err := s.Load()
	require.NoError(t, err)

	writeFile(t, path, "[hotkey\n")
	_, err = s.Load()
	var perr *loader.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, bowmode.ModePress, s.Get().Mode)
}

func TestStoreUpdateNotifiesAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickdraw.toml")
	s := NewStore(path, WithEnv(nil))

	var got []notify.Change
	s.SubscribePath("hotkey", func(c notify.Change) { got = append(got, c) })

	require.NoError(t, s.Update(SourceUI, func(c *Config) {
		c.Mode = bowmode.ModeSmart
		c.HideItems = true
	}))
	require.Len(t, got, 1)
	assert.Equal(t, PathMode, got[0].Path)
	assert.Equal(t, SourceUI, got[0].Source)

	other := NewStore(path, WithEnv(nil))
	_, err := other.Load()
	require.NoError(t, err)
	assert.Equal(t, bowmode.ModeSmart, other.Get().Mode)
	assert.True(t, other.Get().HideItems)

	got = nil
	require.NoError(t, s.Update(SourceUI, func(c *Config) {}))
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	s := NewStore("")
	assert.Empty(t, s.Path())
	assert.ErrorIs(t, s.Save(), ErrNoPath)
	require.NoError(t, s.Update(SourceUI, func(c *Config) { c.AutoDraw = false }))
	assert.False(t, s.Get().AutoDraw)
	assert.ErrorIs(t, s.Watch(watcher.New(), nil), ErrNoPath)
}

func TestStoreWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickdraw.toml")
	writeFile(t, path, "[hotkey]\nmode = \"hold\"\n")

	s := NewStore(path, WithEnv(nil))
	_, err := s.Load()
	require.NoError(t, err)

	var mu sync.Mutex
	var applied []Config
	w := watcher.New(watcher.WithDebounce(20 * time.Millisecond))
	require.NoError(t, s.Watch(w, func(c Config) {
		mu.Lock()
		applied = append(applied, c)
		mu.Unlock()
	}))
	require.NoError(t, w.Start())
	defer w.Stop()

	writeFile(t, path, "[hotkey]\nmode = \"press\"\n")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) > 0 && applied[len(applied)-1].Mode == bowmode.ModePress
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, bowmode.ModePress, s.Get().Mode)
}
