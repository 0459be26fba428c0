package prefs

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/quickdraw/internal/game"
)

// Decode reads any known shape of the preferences file. Unreadable
// records are skipped rather than failing the whole file.
//
//	v2:      {"version":2,"saves":{"key":{"chosen_bow":"0x..","preferred_arrow":"0x.."}}}
//	v1:      {"key":{"bow":77189,"arrow":"0x0001397D"}}
//	v0:      {"key":77189}
func Decode(data []byte) (map[string]Entry, error) {
	entries := make(map[string]Entry)
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrCorrupt
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrCorrupt
	}

	saves := root
	if root.Get("version").Exists() {
		saves = root.Get("saves")
	}
	saves.ForEach(func(k, v gjson.Result) bool {
		key := NormalizeSaveKey(k.String())
		if key == "" {
			return true
		}
		if e, ok := decodeEntry(v); ok {
			entries[key] = e
		}
		return true
	})
	return entries, nil
}

func decodeEntry(v gjson.Result) (Entry, bool) {
	var e Entry
	switch {
	case v.IsObject():
		raw := first(v, "chosen_bow", "bow", "chosen")
		if !raw.Exists() {
			return e, false
		}
		bow, ok := formID(raw)
		if !ok {
			return e, false
		}
		arrow, _ := formID(first(v, "preferred_arrow", "arrow"))
		e.ChosenBow, e.PreferredArrow = bow, arrow
		if ts := v.Get("updated"); ts.Exists() {
			if t, err := time.Parse(time.RFC3339, ts.String()); err == nil {
				e.Updated = t
			}
		}
		return e, true
	default:
		bow, ok := formID(v)
		e.ChosenBow = bow
		return e, ok
	}
}

func first(v gjson.Result, names ...string) gjson.Result {
	for _, n := range names {
		if r := v.Get(n); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

func formID(v gjson.Result) (game.FormID, bool) {
	switch v.Type {
	case gjson.Number:
		n := v.Uint()
		if v.Num < 0 || n > 0xFFFFFFFF {
			return game.NoForm, false
		}
		return game.FormID(n), true
	case gjson.String:
		id, err := game.ParseFormID(v.String())
		return id, err == nil
	case gjson.Null:
		return game.NoForm, true
	}
	return game.NoForm, false
}

// Encode writes entries in the current shape, keys sorted.
func Encode(entries map[string]Entry) ([]byte, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := []byte(`{}`)
	doc, err := sjson.SetBytes(doc, "version", Version)
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetRawBytes(doc, "saves", []byte(`{}`))
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		e := entries[k]
		rec := map[string]any{
			"chosen_bow":      formString(e.ChosenBow),
			"preferred_arrow": formString(e.PreferredArrow),
		}
		if !e.Updated.IsZero() {
			rec["updated"] = e.Updated.UTC().Format(time.RFC3339)
		}
		doc, err = sjson.SetBytes(doc, "saves."+escapeKey(k), rec)
		if err != nil {
			return nil, fmt.Errorf("encoding prefs for %q: %w", k, err)
		}
	}
	return doc, nil
}

func formString(id game.FormID) string {
	if id == game.NoForm {
		return ""
	}
	return "0x" + id.String()
}

// escapeKey protects sjson path syntax characters in a save name.
func escapeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
