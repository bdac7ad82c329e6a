package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/ineffable/internal/config"
	"github.com/dshills/ineffable/internal/logging"
	"github.com/dshills/ineffable/internal/report"
)

// EnvPrefix is the prefix of every environment variable the engine reads.
const EnvPrefix = "INEFFABLE_"

// KeyLogLevel is the document key of the log level. It is only read from
// the environment.
const KeyLogLevel = "log_level"

// EnvLoader loads setting overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "INEFFABLE_")
	mapping map[string]string // Env var -> document key
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "INEFFABLE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "DOUBLE_CLICK_TIMING":   KeyDoubleClickTiming,
		prefix + "POST_ACCEPTANCE_DELAY": KeyPostAcceptanceDelay,
		prefix + "LOG_LEVEL":             KeyLogLevel,
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = key
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// Load returns a document of every mapped variable that is set. Variables
// carrying the prefix but no mapping become lower-case keys, so
// INEFFABLE_FOO_BAR sets foo_bar.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() map[string]any {
	doc := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		key, mapped := l.mapping[name]
		if !mapped {
			key = strings.ToLower(strings.TrimPrefix(name, l.prefix))
		}
		doc[key] = parseValue(value)
	}
	return doc
}

// Settings decodes the timing overrides into a settings-only
// configuration layer.
func (l *EnvLoader) Settings() (*config.InputConfig, *report.Report) {
	doc := l.Load()
	delete(doc, KeyLogLevel)
	return Decode(doc)
}

// LogLevel returns the log level override, if set.
func (l *EnvLoader) LogLevel() (logging.Level, bool) {
	v, ok := l.Load()[KeyLogLevel]
	if !ok {
		return logging.LevelInfo, false
	}
	s, ok := v.(string)
	if !ok {
		return logging.LevelInfo, false
	}
	return logging.ParseLevel(s), true
}

// parseValue turns numbers into numbers and leaves everything else as a
// string for the decoder to interpret.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
