package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	w := New()
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = New(WithDebounce(0), WithDebounce(-time.Second))
	if w.debounce != 0 {
		t.Errorf("debounce = %v, want 0 (negative ignored)", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	w := New()

	if err := w.Watch(filepath.Join(dir, "quickdraw.toml")); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(filepath.Join(dir, "missing.toml")); err != nil {
		t.Fatalf("Watch() for a file that does not exist yet: %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 2 {
		t.Errorf("WatchedFiles() = %v, want 2 files", got)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := New()
	if w.IsRunning() {
		t.Error("IsRunning() = true before Start()")
	}
	if err := w.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() before Start() = %v, want ErrNotRunning", err)
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "quickdraw.toml")
	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(file, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(0))
	var mu sync.Mutex
	var events []Event
	w.OnChange(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})
	if err := w.Watch(file); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) > 0
	})
	if !ok {
		t.Fatal("no event for the watched file")
	}

	abs, _ := filepath.Abs(file)
	mu.Lock()
	defer mu.Unlock()
	for _, ev := range events {
		if ev.Path != abs {
			t.Errorf("event for unwatched path %s", ev.Path)
		}
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "quickdraw.toml")

	w := New(WithDebounce(150 * time.Millisecond))
	var mu sync.Mutex
	count := 0
	w.OnChange(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	if err := w.Watch(file); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte{byte('0' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count > 0
	}) {
		t.Fatal("no debounced event")
	}
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
}
