package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdraw/internal/game"
)

func TestDefaultStrings(t *testing.T) {
	s := DefaultStrings()
	assert.Equal(t, " (chosen)", s.Get(KeyChosenSuffix))
	assert.Equal(t, "nope", s.Get("nope"))

	_, err := s.Lookup("nope")
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, "Bound V", s.Format(KeyCaptured, "V"))
}

func TestParseStringsOverridesAndFlattens(t *testing.T) {
	s, err := ParseStrings([]byte(`
chosen_suffix: " [Schnellzug]"
status:
  phase: Phase
  mode: Modus
extra: 3
blank:
`))
	require.NoError(t, err)
	assert.Equal(t, " [Schnellzug]", s.Get(KeyChosenSuffix))
	assert.Equal(t, "Modus", s.Get(KeyMode))
	assert.Equal(t, "Quick Draw", s.Get(KeyTitle), "defaults survive")
	assert.Equal(t, "3", s.Get("extra"))
	v, err := s.Lookup("blank")
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.Contains(t, s.Keys(), "status.mode")

	_, err = ParseStrings([]byte("a: [unclosed"))
	assert.Error(t, err)
}

func TestLoadStringsMissingFile(t *testing.T) {
	s, err := LoadStrings(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStrings().Keys(), s.Keys())
}

func TestParseHidden(t *testing.T) {
	list, err := ParseHidden([]byte(`
hidden:
  - "0x0001BE1A"
  - 80226
  - 0001BE1A
  - "13911"
`))
	require.NoError(t, err)
	assert.Equal(t, []game.FormID{13911, 80226, 0x1BE1A}, list)
	assert.True(t, IsHidden(list, 0x1BE1A))
	assert.False(t, IsHidden(list, 0x1BE1B))
}

func TestParseHiddenRejectsBadEntries(t *testing.T) {
	for _, doc := range []string{
		"hidden:\n  - helmet\n",
		"hidden:\n  - 0\n",
		"hidden:\n  - [1, 2]\n",
	} {
		_, err := ParseHidden([]byte(doc))
		assert.ErrorIs(t, err, ErrBadForm, doc)
	}
}

func TestLoadHidden(t *testing.T) {
	dir := t.TempDir()
	list, err := LoadHidden(filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, list)

	path := filepath.Join(dir, "hidden.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hidden: [\"0x10\"]\n"), 0o644))
	list, err = LoadHidden(path)
	require.NoError(t, err)
	assert.Equal(t, []game.FormID{0x10}, list)
}
