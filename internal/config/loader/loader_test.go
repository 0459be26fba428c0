package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/quickdraw.toml", `
[hotkey]
mode = "smart"
keyboard = [47, 42, -1]
smart_threshold = 0.25

[bow]
chosen = "0x00013985"
auto_draw = false
`)

	l := NewTOMLLoaderWithFS(memfs, "/quickdraw.toml")
	data, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	hotkey, ok := data["hotkey"].(map[string]any)
	if !ok {
		t.Fatal("expected hotkey to be a map")
	}
	if hotkey["mode"] != "smart" {
		t.Errorf("mode = %v, want smart", hotkey["mode"])
	}
	if hotkey["smart_threshold"] != 0.25 {
		t.Errorf("smart_threshold = %v (%T), want 0.25", hotkey["smart_threshold"], hotkey["smart_threshold"])
	}
	keys, ok := hotkey["keyboard"].([]any)
	if !ok || len(keys) != 3 || keys[0] != int64(47) {
		t.Errorf("keyboard = %#v, want [47 42 -1]", hotkey["keyboard"])
	}

	if v, ok := Lookup(data, "bow.auto_draw"); !ok || v != false {
		t.Errorf("bow.auto_draw = %v, %v; want false, true", v, ok)
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	l := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml")
	data, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data != nil {
		t.Errorf("data = %v, want nil", data)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[hotkey]\nmode = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Errorf("Line = 0, want a position")
	}
	if !strings.Contains(perr.Error(), "/bad.toml") {
		t.Errorf("Error() = %q, want the file name", perr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	l := NewTOMLLoader("")
	data, err := l.LoadFromReader(strings.NewReader("[patches]\nhide_items = true\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if v, _ := Lookup(data, "patches.hide_items"); v != true {
		t.Errorf("patches.hide_items = %v, want true", v)
	}
}

func TestTOMLLoader_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "quickdraw.toml")
	l := NewTOMLLoader(path)

	in := map[string]any{}
	SetPath(in, "hotkey.mode", "press")
	SetPath(in, "hotkey.gamepad", []int{10, -1, -1})
	SetPath(in, "bow.sheathe_delay", 1.5)
	if err := l.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the config", len(entries))
	}

	out, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := Lookup(out, "hotkey.mode"); v != "press" {
		t.Errorf("hotkey.mode = %v", v)
	}
	if v, _ := Lookup(out, "bow.sheathe_delay"); v != 1.5 {
		t.Errorf("bow.sheathe_delay = %v", v)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"hotkey": map[string]any{"mode": "hold", "require_exclusive": true},
		"bow":    map[string]any{"auto_draw": true},
	}
	src := map[string]any{
		"hotkey":  map[string]any{"mode": "press"},
		"patches": map[string]any{"hide_items": true},
	}
	got := DeepMerge(dst, src)

	if v, _ := Lookup(got, "hotkey.mode"); v != "press" {
		t.Errorf("hotkey.mode = %v, want press", v)
	}
	if v, _ := Lookup(got, "hotkey.require_exclusive"); v != true {
		t.Errorf("hotkey.require_exclusive lost: %v", v)
	}
	if v, _ := Lookup(got, "patches.hide_items"); v != true {
		t.Errorf("patches.hide_items = %v", v)
	}
	if got := DeepMerge(nil, src); got == nil {
		t.Error("DeepMerge(nil, src) = nil")
	}
}

func TestLookupAndSetPath(t *testing.T) {
	data := map[string]any{}
	SetPath(data, "a.b.c", 1)
	SetPath(data, "a.d", 2)

	if v, ok := Lookup(data, "a.b.c"); !ok || v != 1 {
		t.Errorf("a.b.c = %v, %v", v, ok)
	}
	if _, ok := Lookup(data, "a.b.c.d"); ok {
		t.Error("lookup through a leaf should fail")
	}
	if _, ok := Lookup(data, "x"); ok {
		t.Error("lookup of missing key should fail")
	}

	SetPath(data, "a.d.e", 3)
	if v, _ := Lookup(data, "a.d.e"); v != 3 {
		t.Errorf("SetPath should replace a leaf with a table, got %v", v)
	}
}
