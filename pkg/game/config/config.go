// Package config loads game settings from defaults, an optional YAML file and
// command-line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/input"
	"ghostgame/pkg/engine/logger"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Renderer names.
const (
	RendererTUI    = "tui"
	RendererEbiten = "ebiten"
)

// Config holds all settings for a play session.
type Config struct {
	Renderer  string          `koanf:"renderer"`
	Level     string          `koanf:"level"`
	Locale    string          `koanf:"locale"`
	Inventory InventoryConfig `koanf:"inventory"`
	Log       LogConfig       `koanf:"log"`
	Tick      TickConfig      `koanf:"tick"`

	// Bindings maps action keys (move_north, reset_level, ...) to a key code.
	// Only settable from the config file.
	Bindings map[string]string `koanf:"bindings"`
}

// InventoryConfig selects how held items combine.
type InventoryConfig struct {
	Mode string `koanf:"mode"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// TickConfig controls the simulation rate of the terminal frontend.
type TickConfig struct {
	RateHz int `koanf:"rate_hz"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Renderer:  RendererTUI,
		Locale:    "en",
		Inventory: InventoryConfig{Mode: capability.ModeCumulative.String()},
		Log:       LogConfig{Level: "info", Format: "text"},
		Tick:      TickConfig{RateHz: 30},
	}
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"renderer":       "renderer",
	"level":          "level",
	"locale":         "locale",
	"inventory-mode": "inventory.mode",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
	"tick-rate":      "tick.rate_hz",
}

// Flags registers the config flags on fs with their default values.
func Flags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("renderer", d.Renderer, "frontend to use (tui or ebiten)")
	fs.String("level", d.Level, "level file to load (empty = built-in level)")
	fs.String("locale", d.Locale, "message language")
	fs.String("inventory-mode", d.Inventory.Mode, "how items combine (cumulative or single)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-format", d.Log.Format, "log format (text or json)")
	fs.String("log-file", d.Log.File, "write logs to this file")
	fs.Int("tick-rate", d.Tick.RateHz, "terminal simulation ticks per second")
}

// Load reads the optional YAML file at path and then applies flags from fs.
// Flags left at their default do not override the file.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrapf(err, "load config file")
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").Wrapf(err, "load flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrapf(err, "decode config")
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks every setting and reports the first problem.
func (c *Config) Validate() error {
	if !slices.Contains([]string{RendererTUI, RendererEbiten}, c.Renderer) {
		return invalid("renderer", c.Renderer, "renderer must be tui or ebiten")
	}
	if _, err := capability.ParseMode(c.Inventory.Mode); err != nil {
		return invalid("inventory.mode", c.Inventory.Mode, "unknown inventory mode")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "unknown log level")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", c.Log.Format, "log format must be text or json")
	}
	for action, code := range c.Bindings {
		if _, err := input.ParseAction(action); err != nil {
			return invalid("bindings", action, "unknown action")
		}
		if strings.TrimSpace(code) == "" {
			return invalid("bindings."+action, code, "binding needs a key")
		}
	}
	if c.Tick.RateHz <= 0 || c.Tick.RateHz > 240 {
		return invalid("tick.rate_hz", c.Tick.RateHz, "tick rate must be between 1 and 240")
	}
	return nil
}

// InventoryMode returns the parsed inventory mode.
func (c *Config) InventoryMode() capability.Mode {
	mode, err := capability.ParseMode(c.Inventory.Mode)
	if err != nil {
		return capability.ModeCumulative
	}
	return mode
}

// KeyBindings returns the configured bindings keyed by action.
func (c *Config) KeyBindings() map[input.Action]string {
	out := make(map[input.Action]string, len(c.Bindings))
	for action, code := range c.Bindings {
		if a, err := input.ParseAction(action); err == nil {
			out[a] = strings.TrimSpace(code)
		}
	}
	return out
}

func invalid(key string, value any, msg string) error {
	return oops.Code("INVALID_CONFIG").With("key", key).With("value", value).Wrapf(ErrInvalidConfig, "%s", msg)
}
