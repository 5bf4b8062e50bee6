// Package config loads game settings from a YAML file, a .env file and
// TETRIS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/tetromino/tetris"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Input actions that can be bound to keys.
const (
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionDown    = "down"
	ActionRotate  = "rotate"
	ActionDrop    = "drop"
	ActionPause   = "pause"
	ActionRestart = "restart"
	ActionDebug   = "debug"
	ActionMute    = "mute"
	ActionVolUp   = "volume_up"
	ActionVolDown = "volume_down"
)

var Actions = []string{
	ActionLeft, ActionRight, ActionDown, ActionRotate,
	ActionDrop, ActionPause, ActionRestart, ActionDebug,
	ActionMute, ActionVolUp, ActionVolDown,
}

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Game   GameConfig   `yaml:"game"`
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
	Input  InputConfig  `yaml:"input"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type GameConfig struct {
	// Seed 0 picks a random seed at startup.
	Seed       uint64 `yaml:"seed"`
	Randomizer string `yaml:"randomizer"`
}

type WindowConfig struct {
	Scale float64 `yaml:"scale"`
}

type AudioConfig struct {
	Volume float64 `yaml:"volume"`
	Mute   bool    `yaml:"mute"`
}

type InputConfig struct {
	RepeatDelay time.Duration       `yaml:"repeat_delay"`
	RepeatRate  time.Duration       `yaml:"repeat_rate"`
	Keys        map[string][]string `yaml:"keys"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "console"},
		Game:   GameConfig{Randomizer: tetris.RandomizerUniform},
		Window: WindowConfig{Scale: 1},
		Audio:  AudioConfig{Volume: 1},
		Input: InputConfig{
			RepeatDelay: 170 * time.Millisecond,
			RepeatRate:  50 * time.Millisecond,
			Keys: map[string][]string{
				ActionLeft:    {"ArrowLeft", "A"},
				ActionRight:   {"ArrowRight", "D"},
				ActionDown:    {"ArrowDown", "S"},
				ActionRotate:  {"ArrowUp", "W"},
				ActionDrop:    {"Space"},
				ActionPause:   {"P"},
				ActionRestart: {"R"},
				ActionDebug:   {"F1"},
				ActionMute:    {"M"},
				ActionVolUp:   {"Equal"},
				ActionVolDown: {"Minus"},
			},
		},
	}
}

// Load builds the effective configuration. path may be empty, in which
// case TETRIS_CONFIG is consulted; with neither, defaults are used.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("TETRIS_CONFIG")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Key bindings listed in the file
// replace the default bindings of that action only.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	keys := cfg.Input.Keys
	cfg.Input.Keys = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	for action, names := range cfg.Input.Keys {
		keys[action] = names
	}
	cfg.Input.Keys = keys
	return cfg, nil
}

// ApplyEnv overrides fields from TETRIS_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TETRIS_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("TETRIS_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookup("TETRIS_RANDOMIZER"); ok {
		c.Game.Randomizer = v
	}
	if v, ok := lookup("TETRIS_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: TETRIS_SEED: %w", ErrInvalid, err)
		}
		c.Game.Seed = seed
	}
	if v, ok := lookup("TETRIS_SCALE"); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: TETRIS_SCALE: %w", ErrInvalid, err)
		}
		c.Window.Scale = scale
	}
	if v, ok := lookup("TETRIS_VOLUME"); ok {
		vol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: TETRIS_VOLUME: %w", ErrInvalid, err)
		}
		c.Audio.Volume = vol
	}
	if v, ok := lookup("TETRIS_MUTE"); ok {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TETRIS_MUTE: %w", ErrInvalid, err)
		}
		c.Audio.Mute = mute
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}
	if _, err := tetris.ParseRandomizer(c.Game.Randomizer, 0); err != nil {
		errs = append(errs, fmt.Errorf("game.randomizer: %w", err))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window.scale %v must be positive", c.Window.Scale))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v must be within [0,1]", c.Audio.Volume))
	}
	if c.Input.RepeatDelay < 0 || c.Input.RepeatRate < 0 {
		errs = append(errs, fmt.Errorf("input repeat timings must not be negative"))
	}
	for action := range c.Input.Keys {
		if !slices.Contains(Actions, action) {
			errs = append(errs, fmt.Errorf("input.keys: unknown action %q", action))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
