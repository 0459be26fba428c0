package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dshills/quickdraw/internal/game"
)

// HiddenSpec is the hidden-items file:
//
//	hidden:
//	  - "0x0001BE1A"   # hunting cap
//	  - 80226
type HiddenSpec struct {
	Hidden []yaml.Node `yaml:"hidden"`
}

// ParseHidden returns the sorted, de-duplicated form list.
func ParseHidden(data []byte) ([]game.FormID, error) {
	var spec HiddenSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("catalog: unmarshal hidden: %w", err)
	}
	out := make([]game.FormID, 0, len(spec.Hidden))
	for _, n := range spec.Hidden {
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d", ErrBadForm, n.Line)
		}
		id, err := game.ParseFormID(n.Value)
		if err != nil || id == game.NoForm {
			return nil, fmt.Errorf("%w: %q at line %d", ErrBadForm, n.Value, n.Line)
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// LoadHidden reads path. A missing file gives an empty list.
func LoadHidden(path string) ([]game.FormID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: load %s: %w", path, err)
	}
	return ParseHidden(data)
}

// IsHidden reports whether id is in a sorted list.
func IsHidden(list []game.FormID, id game.FormID) bool {
	_, ok := slices.BinarySearch(list, id)
	return ok
}
