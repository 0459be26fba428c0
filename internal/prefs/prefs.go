package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/game"
)

// Version is written to every saved file.
const Version = 2

// Entry is what is remembered for one save.
type Entry struct {
	ChosenBow      game.FormID
	PreferredArrow game.FormID
	Updated        time.Time
}

// NormalizeSaveKey lower-cases the save name and strips any directory and
// extension: "Saves/Quicksave.ESS" becomes "quicksave".
func NormalizeSaveKey(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Store holds entries in memory and persists them to one JSON file.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock sets the time source used for Updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store backed by path. An empty path keeps the
// store in memory.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]Entry),
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry for a save.
func (s *Store) Get(save string) (Entry, bool) {
	key := NormalizeSaveKey(save)
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// Upsert records the current choices for a save.
func (s *Store) Upsert(save string, bow, arrow game.FormID) error {
	key := NormalizeSaveKey(save)
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	s.entries[key] = Entry{ChosenBow: bow, PreferredArrow: arrow, Updated: s.now().UTC()}
	s.mu.Unlock()
	s.logger.Debug().Str("save", key).Stringer("bow", bow).Stringer("arrow", arrow).Msg("prefs upserted")
	return nil
}

// Erase forgets a save. It reports whether an entry existed.
func (s *Store) Erase(save string) bool {
	key := NormalizeSaveKey(save)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Keys returns the stored save keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Load replaces the entries with the file's contents. A missing file
// leaves the store empty.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.mu.Lock()
			s.entries = make(map[string]Entry)
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("reading prefs %s: %w", s.path, err)
	}
	entries, err := Decode(data)
	if err != nil {
		return fmt.Errorf("prefs %s: %w", s.path, err)
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.logger.Debug().Str("path", s.path).Int("saves", len(entries)).Msg("prefs loaded")
	return nil
}

// Save writes every entry in the current shape.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	data, err := Encode(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("writing prefs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing prefs: %w", err)
	}
	return nil
}
