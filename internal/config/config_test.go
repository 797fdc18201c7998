package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termcal/internal/render"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, recreated, err := Load(path)
	require.NoError(t, err)
	assert.True(t, recreated)
	assert.Equal(t, "false", cfg.Preferences["sunday_first"])
	assert.Equal(t, "true", cfg.Preferences["short_weekdays"])
	assert.Equal(t, "rounded_grid", cfg.Preferences["table_format"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, recreated, err := Load(path)
	require.NoError(t, err)
	assert.False(t, recreated)
	assert.Equal(t, cfg.Preferences, again.Preferences)
}

func TestLoadFillsMissingPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "events_file: mine.csv\npreferences:\n  sunday_first: \"yes\"\n  table_format: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, recreated, err := Load(path)
	require.NoError(t, err)
	assert.True(t, recreated)
	assert.Equal(t, "yes", cfg.Get("sunday_first", "false"))
	assert.Equal(t, "rounded_grid", cfg.Get("table_format", ""))
	assert.Equal(t, "mine.csv", cfg.EventsFile)
	assert.True(t, cfg.Options().SundayFirst)
	assert.True(t, cfg.Options().ShortLabels)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [unclosed"), 0o600))

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestGetBool(t *testing.T) {
	cfg := DefaultConfig()
	for _, v := range []string{"1", "yes", "TRUE", "on"} {
		cfg.Preferences["x"] = v
		assert.True(t, cfg.GetBool("x", false), v)
	}
	for _, v := range []string{"0", "no", "False", "off"} {
		cfg.Preferences["x"] = v
		assert.False(t, cfg.GetBool("x", true), v)
	}
	cfg.Preferences["x"] = "maybe"
	assert.True(t, cfg.GetBool("x", true))
	assert.False(t, cfg.GetBool("missing", false))
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("sunday_first", "true"))
	assert.True(t, cfg.Options().SundayFirst)

	require.NoError(t, cfg.Set("table_format", "heavy_grid"))
	assert.Equal(t, render.TableStyle("heavy_grid"), cfg.TableStyle())

	err := cfg.Set("colour", "blue")
	assert.True(t, errors.Is(err, ErrUnknownPref))

	err = cfg.Set("short_weekdays", "sometimes")
	assert.True(t, errors.Is(err, ErrInvalidValue))

	err = cfg.Set("table_format", "fancy")
	assert.True(t, errors.Is(err, ErrInvalidValue))

	err = cfg.Set("table_format", "  ")
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

func TestTableStyleFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preferences["table_format"] = "something_else"
	assert.Equal(t, render.DefaultTableStyle, cfg.TableStyle())
}

func TestPrefsOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preferences["zeta"] = "1"
	cfg.Preferences["alpha"] = "2"

	names := make([]string, 0)
	for _, p := range cfg.Prefs() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"sunday_first", "short_weekdays", "table_format", "alpha", "zeta"}, names)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	require.NoError(t, cfg.Set("short_weekdays", "false"))
	cfg.BasicAuth = &BasicAuthConfig{Username: "me", Password: "pw"}
	require.NoError(t, cfg.Save(path))

	got, recreated, err := Load(path)
	require.NoError(t, err)
	assert.False(t, recreated)
	assert.False(t, got.Options().ShortLabels)
	require.NotNil(t, got.BasicAuth)
	assert.Equal(t, "me", got.BasicAuth.Username)
}

func TestEventsPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/etc/termcal", "events.csv"), cfg.EventsPath("/etc/termcal/config.yaml"))
	cfg.EventsFile = "/data/events.csv"
	assert.Equal(t, "/data/events.csv", cfg.EventsPath("/etc/termcal/config.yaml"))
}

func TestReadDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  sunday_first: \"true\"\n"), 0o600))

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.True(t, cfg.GetBool(SundayFirst.Name, false))
	assert.Equal(t, ShortWeekdays.Default, cfg.Get(ShortWeekdays.Name, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "preferences:\n  sunday_first: \"true\"\n", string(data))

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestKnownValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preferences["colour"] = "red"
	require.Len(t, cfg.Prefs(), len(KnownPrefs)+1)

	known := cfg.KnownValues()
	require.Len(t, known, len(KnownPrefs))
	for i, p := range KnownPrefs {
		assert.Equal(t, p.Name, known[i].Name)
	}
	_, ok := LookupPref("colour")
	assert.False(t, ok)
}
