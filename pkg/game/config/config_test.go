package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ghost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, capability.ModeCumulative, cfg.InventoryMode())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
renderer: ebiten
inventory:
  mode: single
log:
  level: debug
  format: json
tick:
  rate_hz: 60
`)
	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, RendererEbiten, cfg.Renderer)
	assert.Equal(t, capability.ModeSingleEquipped, cfg.InventoryMode())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Tick.RateHz)
	assert.Equal(t, "en", cfg.Locale, "unset keys keep defaults")
}

func TestLoad_ChangedFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "renderer: ebiten\ntick:\n  rate_hz: 60\n")
	cfg, err := Load(path, newFlags(t, "--renderer", "tui"))
	require.NoError(t, err)

	assert.Equal(t, RendererTUI, cfg.Renderer)
	assert.Equal(t, 60, cfg.Tick.RateHz, "unchanged flag does not override file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"renderer", []string{"--renderer", "opengl"}},
		{"mode", []string{"--inventory-mode", "stacked"}},
		{"log level", []string{"--log-level", "chatty"}},
		{"log format", []string{"--log-format", "xml"}},
		{"tick rate", []string{"--tick-rate", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", newFlags(t, tt.args...))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Bindings(t *testing.T) {
	path := writeConfig(t, "bindings:\n  reset_level: x\n  dump_map: f9\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, map[input.Action]string{
		input.ActionResetLevel:   "x",
		input.ActionDebugMapDump: "f9",
	}, cfg.KeyBindings())
}

func TestLoad_InvalidBindings(t *testing.T) {
	for _, body := range []string{
		"bindings:\n  fly: x\n",
		"bindings:\n  hint: \"\"\n",
	} {
		_, err := Load(writeConfig(t, body), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}
