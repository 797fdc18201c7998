package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"termcal/internal/calendar"
	"termcal/internal/render"
)

var (
	// ErrUnknownPref is returned by Set for names that are not preferences.
	ErrUnknownPref = errors.New("unknown preference")
	// ErrInvalidValue is returned by Set when a value fails validation.
	ErrInvalidValue = errors.New("invalid preference value")
)

// Pref names a user preference and its default string value.
type Pref struct {
	Name    string
	Default string
	// Validate rejects values that cannot be stored. Nil accepts anything
	// non-blank.
	Validate func(string) error
}

var (
	SundayFirst   = Pref{Name: "sunday_first", Default: "false", Validate: validateBool}
	ShortWeekdays = Pref{Name: "short_weekdays", Default: "true", Validate: validateBool}
	TableFormat   = Pref{Name: "table_format", Default: string(render.DefaultTableStyle), Validate: render.ValidateTableStyle}
)

// KnownPrefs lists every preference in display order.
var KnownPrefs = []Pref{SundayFirst, ShortWeekdays, TableFormat}

// BasicAuthConfig holds HTTP Basic Auth credentials for the serve command.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the settings file.
type Config struct {
	// EventsFile is the CSV event store. Relative paths resolve against the
	// settings file's directory.
	EventsFile string `yaml:"events_file" json:"events_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// RefreshCron is the cron schedule used by `view --watch`.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Listen is the HTTP listen address for `serve`.
	Listen string `yaml:"listen" json:"listen"`

	// BasicAuth, if non-nil, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`

	// Preferences are the user-editable display settings.
	Preferences map[string]string `yaml:"preferences" json:"preferences"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	prefs := make(map[string]string, len(KnownPrefs))
	for _, p := range KnownPrefs {
		prefs[p.Name] = p.Default
	}
	return &Config{
		EventsFile:  "events.csv",
		LogLevel:    "warn",
		RefreshCron: "0 0 * * *",
		Listen:      "127.0.0.1:8080",
		Preferences: prefs,
	}
}

// Normalize fills in missing or blank values with defaults and reports
// whether anything had to be filled in.
func (c *Config) Normalize() bool {
	changed := false
	if c.EventsFile == "" {
		c.EventsFile = "events.csv"
		changed = true
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
		changed = true
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "0 0 * * *"
		changed = true
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
		changed = true
	}
	if c.Preferences == nil {
		c.Preferences = make(map[string]string, len(KnownPrefs))
	}
	for _, p := range KnownPrefs {
		if strings.TrimSpace(c.Preferences[p.Name]) == "" {
			c.Preferences[p.Name] = p.Default
			changed = true
		}
	}
	return changed
}

// Get returns the named preference, or def when it is absent or blank.
func (c *Config) Get(name, def string) string {
	v, ok := c.Preferences[name]
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GetBool returns the named preference as a boolean. Values that are not
// recognised booleans yield def.
func (c *Config) GetBool(name string, def bool) bool {
	b, ok := parseBool(c.Get(name, ""))
	if !ok {
		return def
	}
	return b
}

// Options derives the grid builder's options from the preferences.
func (c *Config) Options() calendar.Options {
	sundayDef, _ := parseBool(SundayFirst.Default)
	shortDef, _ := parseBool(ShortWeekdays.Default)
	return calendar.Options{
		SundayFirst: c.GetBool(SundayFirst.Name, sundayDef),
		ShortLabels: c.GetBool(ShortWeekdays.Name, shortDef),
	}
}

// TableStyle returns the table_format preference, falling back to the
// default style for unrecognised values.
func (c *Config) TableStyle() render.TableStyle {
	return render.ParseTableStyle(c.Get(TableFormat.Name, TableFormat.Default))
}

// Set validates and stores a preference value.
func (c *Config) Set(name, value string) error {
	p, ok := LookupPref(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPref, name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s must not be blank", ErrInvalidValue, name)
	}
	if p.Validate != nil {
		if err := p.Validate(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
	}
	if c.Preferences == nil {
		c.Preferences = make(map[string]string)
	}
	c.Preferences[name] = value
	return nil
}

// PrefValue is a single row of the preference listing.
type PrefValue struct {
	Name  string
	Value string
}

// Prefs lists the known preferences first, in their fixed order, followed
// by any unknown keys found in the file, sorted by name.
func (c *Config) Prefs() []PrefValue {
	out := make([]PrefValue, 0, len(c.Preferences))
	seen := make(map[string]bool, len(KnownPrefs))
	for _, p := range KnownPrefs {
		out = append(out, PrefValue{Name: p.Name, Value: c.Get(p.Name, p.Default)})
		seen[p.Name] = true
	}
	var extra []string
	for k := range c.Preferences {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, PrefValue{Name: k, Value: c.Preferences[k]})
	}
	return out
}

// KnownValues is Prefs restricted to the preferences Set accepts.
func (c *Config) KnownValues() []PrefValue {
	return c.Prefs()[:len(KnownPrefs)]
}

// EventsPath resolves EventsFile relative to the settings file at cfgPath.
func (c *Config) EventsPath(cfgPath string) string {
	if filepath.IsAbs(c.EventsFile) {
		return c.EventsFile
	}
	return filepath.Join(filepath.Dir(cfgPath), c.EventsFile)
}

// DefaultPath returns $XDG_CONFIG_HOME/termcal/config.yaml, falling back to
// ./termcal.yaml when no user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "termcal.yaml"
	}
	return filepath.Join(dir, "termcal", "config.yaml")
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned with recreated=true.
//   - If the file exists but lacks values, defaults are filled in, the file
//     is rewritten and recreated=true.
func Load(path string) (cfg *Config, recreated bool, err error) {
	if path == "" {
		return nil, false, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, true, err
			}
			return cfg, true, nil
		}
		return nil, false, err
	}

	cfg = &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Normalize() {
		if err := Save(path, cfg); err != nil {
			return cfg, true, err
		}
		return cfg, true, nil
	}

	return cfg, false, nil
}

// Read parses the settings at path without writing anything. Missing
// values are filled with defaults in memory only.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".termcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// LookupPref returns the known preference called name.
func LookupPref(name string) (Pref, bool) {
	for _, p := range KnownPrefs {
		if p.Name == name {
			return p, true
		}
	}
	return Pref{}, false
}

func validateBool(s string) error {
	if _, ok := parseBool(s); !ok {
		return fmt.Errorf("%q is not a boolean (use true/false, yes/no, on/off or 1/0)", s)
	}
	return nil
}

// parseBool accepts the same spellings as INI-style booleans.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true", "on":
		return true, true
	case "0", "no", "false", "off":
		return false, true
	}
	return false, false
}
