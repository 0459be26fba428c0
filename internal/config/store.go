package config

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdraw/internal/config/loader"
	"github.com/dshills/quickdraw/internal/config/notify"
	"github.com/dshills/quickdraw/internal/config/watcher"
)

// Change sources.
const (
	SourceFile = "file"
	SourceEnv  = "env"
	SourceUI   = "ui"
)

// EnvPrefix is the environment override prefix.
const EnvPrefix = "QUICKDRAW_"

// Store owns the current Config, its file and change notifications.
type Store struct {
	mu       sync.RWMutex
	cfg      Config
	file     *loader.TOMLLoader
	env      loader.Loader
	notifier *notify.Notifier
	logger   zerolog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFileSystem reads the file through fsys.
func WithFileSystem(fsys loader.FileSystem) StoreOption {
	return func(s *Store) {
		if s.file != nil {
			s.file = loader.NewTOMLLoaderWithFS(fsys, s.file.Path())
		}
	}
}

// WithEnv overrides the process environment used for QUICKDRAW_ variables.
// A nil slice disables environment overrides.
func WithEnv(env []string) StoreOption {
	return func(s *Store) {
		if env == nil {
			s.env = nil
			return
		}
		s.env = loader.NewEnvLoaderFrom(EnvPrefix, env)
	}
}

// WithStoreLogger sets the logger.
func WithStoreLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a store for path holding the defaults until Load.
// An empty path gives a memory-only store.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		cfg:      Default(),
		env:      loader.NewEnvLoader(EnvPrefix),
		notifier: notify.New(),
		logger:   zerolog.Nop(),
	}
	if path != "" {
		s.file = loader.NewTOMLLoader(path)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path, or "" for a memory-only store.
func (s *Store) Path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Path()
}

// Get returns a copy of the current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Load reads the file and environment and replaces the current config.
// A parse failure keeps the previous config and is returned as the error.
// Field problems are returned as warnings; the config still loads.
func (s *Store) Load() (warnings []error, err error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	cfg, warnings := Decode(data)
	for _, w := range warnings {
		s.logger.Warn().Err(w).Msg("config field reset to default")
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.notifier.NotifyReload(SourceFile)
	return warnings, nil
}

func (s *Store) read() (map[string]any, error) {
	data := make(map[string]any)
	if s.file != nil {
		fileData, err := s.file.Load()
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, fileData)
	}
	if s.env != nil {
		envData, err := s.env.Load()
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, envData)
	}
	return data, nil
}

// Save writes the current config to the file.
func (s *Store) Save() error {
	if s.file == nil {
		return ErrNoPath
	}
	return s.file.Save(s.Get().Encode())
}

// Update applies fn to a copy of the config, stores it and notifies each
// changed path. The file is written when the store has one.
func (s *Store) Update(source string, fn func(*Config)) error {
	s.mu.Lock()
	old := s.cfg
	next := old
	fn(&next)
	s.cfg = next
	s.mu.Unlock()

	changes := Diff(old, next)
	if len(changes) == 0 {
		return nil
	}
	batch := s.notifier.NewBatch()
	for _, ch := range changes {
		batch.Set(ch.Path, ch.OldValue, ch.NewValue, source)
	}
	batch.Commit()

	if s.file == nil {
		return nil
	}
	return s.Save()
}

// Subscribe observes every change.
func (s *Store) Subscribe(o notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(o)
}

// SubscribePath observes changes at or below path.
func (s *Store) SubscribePath(path string, o notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(path, o)
}

// Watch reloads the store whenever w reports a change to its file. The
// watcher must have been created by the caller; Watch registers the path
// and the handler but does not start it. apply receives the reloaded
// config; callers use it to hop onto their own goroutine.
func (s *Store) Watch(w *watcher.Watcher, apply func(Config)) error {
	if s.file == nil {
		return ErrNoPath
	}
	if err := w.Watch(s.file.Path()); err != nil {
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			s.logger.Debug().Str("path", ev.Path).Stringer("op", ev.Op).Msg("config file went away")
			return
		}
		if _, err := s.Load(); err != nil {
			var perr *loader.ParseError
			if errors.As(err, &perr) {
				s.logger.Warn().Err(err).Msg("config reload skipped")
			} else {
				s.logger.Error().Err(err).Msg("config reload failed")
			}
			return
		}
		if apply != nil {
			apply(s.Get())
		}
	})
	return nil
}

// Close drops every subscription.
func (s *Store) Close() {
	s.notifier.Close()
}

// Diff returns one Change per setting that differs, ordered by path.
func Diff(old, next Config) []notify.Change {
	a, b := old.Flatten(), next.Flatten()
	paths := make([]string, 0, len(a))
	for p := range a {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []notify.Change
	for _, p := range paths {
		if reflect.DeepEqual(a[p], b[p]) {
			continue
		}
		out = append(out, notify.Change{Path: p, Type: notify.ChangeSet, OldValue: a[p], NewValue: b[p]})
	}
	return out
}
