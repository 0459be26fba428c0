package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads overrides from environment variables.
// QUICKDRAW_BOW_SHEATHE_DELAY=0.5 becomes bow.sheathe_delay = 0.5.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix, which
// should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// NewEnvLoaderFrom reads from a fixed environment list.
func NewEnvLoaderFrom(prefix string, env []string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: func() []string { return env }}
}

// Load implements Loader. It returns nil when no variable matches.
func (l *EnvLoader) Load() (map[string]any, error) {
	var config map[string]any
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path := l.envToPath(name)
		if path == "" {
			continue
		}
		if config == nil {
			config = make(map[string]any)
		}
		SetPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts QUICKDRAW_HOTKEY_REQUIRE_EXCLUSIVE to
// hotkey.require_exclusive.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// parseValue guesses the type of an environment value. Lists are written
// comma-separated.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			out = append(out, parseValue(strings.TrimSpace(p)))
		}
		return out
	}
	return s
}
