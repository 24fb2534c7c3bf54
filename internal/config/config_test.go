package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-astroclock/internal/astro"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ls-astroclock", "config.toml"), p)
}

func TestLoadFromXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppName), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AppName, "config.toml"), []byte(`zodiac = "lahiri"`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "lahiri", cfg.Zodiac)
	assert.Equal(t, DefaultLatitude, cfg.Latitude)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
ephemeris_dir = "/data/ephem"
latitude = 51.5
longitude = -0.12
zodiac = "fagan-bradley"
heliocentric = true
search_timeout = "250ms"
log_level = "debug"

[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/ephem", cfg.EphemerisDir)
	assert.Equal(t, 51.5, cfg.Latitude)
	assert.Equal(t, -0.12, cfg.Longitude)
	assert.Equal(t, "fagan-bradley", cfg.Zodiac)
	assert.True(t, cfg.Heliocentric)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchTimeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `latitude = 10`))
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Latitude)
	assert.Equal(t, DefaultLongitude, cfg.Longitude)
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout.Duration)
	assert.Equal(t, "127.0.0.1:8642", cfg.Server.Addr)
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg, err := Load(writeConfig(t, `ephemeris_dir = "~/ephem"`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "ephem"), cfg.EphemerisDir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"syntax", `latitude = `, "parse config"},
		{"unknown key", `colour = "blue"`, "unknown keys colour"},
		{"latitude", `latitude = 91`, "latitude"},
		{"longitude", `longitude = -181`, "longitude"},
		{"zodiac", `zodiac = "chinese"`, "unknown zodiac"},
		{"timeout", `search_timeout = "0s"`, "search_timeout"},
		{"bad duration", `search_timeout = "soon"`, "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err, "explicit path must exist")
}

func TestContext(t *testing.T) {
	cfg := Default()
	cfg.Zodiac = "raman"
	cfg.Heliocentric = true

	ctx, err := cfg.Context()
	require.NoError(t, err)
	assert.Equal(t, astro.ZodiacRaman, ctx.Zodiac)
	assert.True(t, ctx.Heliocentric)
	assert.InDelta(t, DefaultLatitude, ctx.Observer.LatitudeDeg(), 1e-9)
	assert.InDelta(t, DefaultLongitude, ctx.Observer.LongitudeEastDeg(), 1e-9)

	cfg.Zodiac = "bogus"
	_, err = cfg.Context()
	assert.Error(t, err)
}
