package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// String keys.
const (
	KeyChosenSuffix = "chosen_suffix"
	KeyTitle        = "status.title"
	KeyPhase        = "status.phase"
	KeyMode         = "status.mode"
	KeyRight        = "status.right_hand"
	KeyLeft         = "status.left_hand"
	KeyAmmo         = "status.ammo"
	KeySynthetic    = "status.synthetic"
	KeyEmpty        = "status.empty"
	KeyHelp         = "status.help"
	KeyCapturing    = "capture.waiting"
	KeyCaptured     = "capture.done"
)

var defaultStrings = map[string]string{
	KeyChosenSuffix: " (chosen)",
	KeyTitle:        "Quick Draw",
	KeyPhase:        "Phase",
	KeyMode:         "Mode",
	KeyRight:        "Right",
	KeyLeft:         "Left",
	KeyAmmo:         "Ammo",
	KeySynthetic:    "Synthetic",
	KeyEmpty:        "(empty)",
	KeyHelp:         "V hotkey  Space attack  D draw  C combat  W werewolf  B choose bow  M mode  K capture  Q quit",
	KeyCapturing:    "Press a key to bind...",
	KeyCaptured:     "Bound %s",
}

// Strings is a flat key to text table.
type Strings struct {
	table map[string]string
}

// DefaultStrings returns the built-in English table.
func DefaultStrings() *Strings {
	t := make(map[string]string, len(defaultStrings))
	for k, v := range defaultStrings {
		t[k] = v
	}
	return &Strings{table: t}
}

// ParseStrings reads a YAML mapping on top of the defaults. Nested
// mappings flatten to dotted keys ("status: {phase: ...}" is
// "status.phase").
func ParseStrings(data []byte) (*Strings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal strings: %w", err)
	}
	s := DefaultStrings()
	flatten("", raw, s.table)
	return s, nil
}

// LoadStrings reads path. A missing file gives the defaults.
func LoadStrings(path string) (*Strings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultStrings(), nil
		}
		return nil, fmt.Errorf("catalog: load %s: %w", path, err)
	}
	return ParseStrings(data)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]any:
			flatten(key, x, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(x)
		}
	}
}

// Lookup returns the text for key.
func (s *Strings) Lookup(key string) (string, error) {
	if v, ok := s.table[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
}

// Get returns the text for key, or the key itself when missing.
func (s *Strings) Get(key string) string {
	if v, ok := s.table[key]; ok {
		return v
	}
	return key
}

// Format looks up key and formats it with args.
func (s *Strings) Format(key string, args ...any) string {
	return fmt.Sprintf(s.Get(key), args...)
}

// Keys returns every key in sorted order.
func (s *Strings) Keys() []string {
	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
