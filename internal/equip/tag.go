package equip

import (
	"strings"

	"github.com/dshills/quickdraw/internal/game"
)

// DefaultMarker is appended to the chosen instance's name.
const DefaultMarker = " (chosen)"

// qualityWords are the tempering suffixes the engine appends on its own.
var qualityWords = []string{"fine", "superior", "exquisite", "flawless", "epic", "legendary"}

// Tagger applies and removes the chosen marker.
type Tagger struct {
	// Marker is the localized marker, including its leading space.
	Marker string
}

// NewTagger returns a tagger for marker, falling back to DefaultMarker.
func NewTagger(marker string) Tagger {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}
	return Tagger{Marker: marker}
}

func (t Tagger) marker() string {
	if strings.TrimSpace(t.Marker) == "" {
		return DefaultMarker
	}
	return t.Marker
}

// Clean strips the chosen marker and any trailing quality suffix, in any
// order and any number of times, then trims trailing spaces. It reports
// whether a marker was found.
func (t Tagger) Clean(name string) (string, bool) {
	mark := strings.TrimSpace(t.marker())
	tagged := false
	for {
		name = strings.TrimRight(name, " ")
		if hasSuffixFold(name, mark) {
			name = name[:len(name)-len(mark)]
			tagged = true
			continue
		}
		if stripped, ok := stripQuality(name); ok {
			name = stripped
			continue
		}
		return name, tagged
	}
}

// Apply returns name carrying exactly one marker.
func (t Tagger) Apply(name string) string {
	cleaned, _ := t.Clean(name)
	if cleaned == "" {
		return strings.TrimSpace(t.marker())
	}
	return cleaned + t.marker()
}

// Remove returns name with the marker and quality suffixes stripped.
func (t Tagger) Remove(name string) string {
	cleaned, _ := t.Clean(name)
	return cleaned
}

// IsTagged reports whether name carries the marker.
func (t Tagger) IsTagged(name string) bool {
	_, tagged := t.Clean(name)
	return tagged
}

// Tag writes the marker into the instance's name override. It returns false
// when nothing had to change.
func (t Tagger) Tag(a game.Actor, it game.Item) bool {
	if a == nil {
		return false
	}
	name := t.Apply(it.DisplayName())
	if name == it.CustomName {
		return false
	}
	return a.SetDisplayName(it.Instance, name)
}

// Untag removes the marker from the instance's name override, deleting the
// override when nothing meaningful is left.
func (t Tagger) Untag(a game.Actor, it game.Item) bool {
	if a == nil || it.CustomName == "" {
		return false
	}
	name := t.Remove(it.CustomName)
	if name == "" || name == t.Remove(it.Name) {
		name = ""
	}
	if name == it.CustomName {
		return false
	}
	return a.SetDisplayName(it.Instance, name)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// stripQuality removes one trailing "(Word)" when Word is a quality word.
func stripQuality(name string) (string, bool) {
	if !strings.HasSuffix(name, ")") {
		return name, false
	}
	open := strings.LastIndexByte(name, '(')
	if open < 0 {
		return name, false
	}
	word := strings.TrimSpace(name[open+1 : len(name)-1])
	for _, q := range qualityWords {
		if strings.EqualFold(word, q) {
			return name[:open], true
		}
	}
	return name, false
}
