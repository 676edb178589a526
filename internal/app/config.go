// Package app binds the console to a display backend and runs it.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"nemo/internal/bus"
	"nemo/internal/graphics"
	"nemo/internal/input"
	"nemo/internal/ppu"
)

// Config holds all application configuration
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Emulation EmulationConfig `json:"emulation"`
	Headless  HeadlessConfig  `json:"headless"`
	Input     InputConfig     `json:"input"`
	Debug     DebugConfig     `json:"debug"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Scale      int    `json:"scale"` // multiple of 256x240
	Fullscreen bool   `json:"fullscreen"`
	Title      string `json:"title"`
}

// VideoConfig contains video rendering configuration
type VideoConfig struct {
	Backend string `json:"backend"` // "ebitengine", "headless", "terminal"
	Filter  string `json:"filter"`  // "nearest", "linear"
	VSync   bool   `json:"vsync"`
}

// EmulationConfig contains emulation-specific settings
type EmulationConfig struct {
	DotsPerCycle int     `json:"dots_per_cycle"`
	FrameRate    float64 `json:"frame_rate"` // 0 runs unthrottled
}

// HeadlessConfig controls runs without a display
type HeadlessConfig struct {
	Frames        int    `json:"frames"`
	SnapshotEvery int    `json:"snapshot_every"`
	OutputDir     string `json:"output_dir"`
	Scale         int    `json:"scale"`
}

// InputConfig contains input configuration
type InputConfig struct {
	Player1 KeyMapping `json:"player1"`
	Player2 KeyMapping `json:"player2"`
}

// KeyMapping represents keyboard key mappings for a controller
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig contains debugging options
type DebugConfig struct {
	LogLevel  int  `json:"log_level"` // glog verbosity
	StatsView bool `json:"stats_view"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Scale: 3,
			Title: "nemo",
		},
		Video: VideoConfig{
			Backend: string(graphics.BackendEbitengine),
			Filter:  "nearest",
			VSync:   true,
		},
		Emulation: EmulationConfig{
			DotsPerCycle: bus.DefaultDotsPerCycle,
			FrameRate:    60,
		},
		Headless: HeadlessConfig{
			Frames:        600,
			SnapshotEvery: 60,
			OutputDir:     "./frames",
			Scale:         2,
		},
		Input: InputConfig{
			Player1: KeyMapping{
				Up:     "Up",
				Down:   "Down",
				Left:   "Left",
				Right:  "Right",
				A:      "Space",
				B:      "LShift",
				Start:  "V",
				Select: "C",
			},
			Player2: KeyMapping{
				Up:     "W",
				Down:   "S",
				Left:   "A",
				Right:  "D",
				A:      "J",
				B:      "K",
				Start:  "Return",
				Select: "Tab",
			},
		},
	}
}

// LoadFromFile loads configuration from a JSON file, writing the defaults
// there first if the file does not exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// validate clamps numeric values and rejects settings that cannot work.
func (c *Config) validate() error {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Emulation.DotsPerCycle <= 0 {
		c.Emulation.DotsPerCycle = bus.DefaultDotsPerCycle
	}
	if c.Emulation.FrameRate < 0 {
		c.Emulation.FrameRate = 60
	}
	if c.Headless.Scale <= 0 {
		c.Headless.Scale = 1
	}
	if c.Headless.SnapshotEvery < 0 {
		c.Headless.SnapshotEvery = 0
	}

	switch graphics.BackendType(c.Video.Backend) {
	case graphics.BackendEbitengine, graphics.BackendHeadless, graphics.BackendTerminal:
	default:
		return &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: errUnknownBackend}
	}
	return nil
}

// Bindings resolves both key mappings to controller buttons.
func (c *Config) Bindings() (map[string]graphics.Binding, error) {
	bindings := make(map[string]graphics.Binding)
	for player, mapping := range []KeyMapping{c.Input.Player1, c.Input.Player2} {
		entries := []struct {
			field  string
			key    string
			button input.Button
		}{
			{"up", mapping.Up, input.ButtonUp},
			{"down", mapping.Down, input.ButtonDown},
			{"left", mapping.Left, input.ButtonLeft},
			{"right", mapping.Right, input.ButtonRight},
			{"a", mapping.A, input.ButtonA},
			{"b", mapping.B, input.ButtonB},
			{"start", mapping.Start, input.ButtonStart},
			{"select", mapping.Select, input.ButtonSelect},
		}
		for _, e := range entries {
			if e.key == "" {
				continue
			}
			field := fmt.Sprintf("input.player%d.%s", player+1, e.field)
			if _, taken := bindings[e.key]; taken {
				return nil, &ConfigError{Field: field, Value: e.key, Err: errDuplicateKey}
			}
			bindings[e.key] = graphics.Binding{Player: player + 1, Button: e.button}
		}
	}
	return bindings, nil
}

// GetWindowResolution returns the window resolution based on scale
func (c *Config) GetWindowResolution() (int, int) {
	return ppu.ScreenWidth * c.Window.Scale, ppu.ScreenHeight * c.Window.Scale
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/nemo.json"
}

var (
	errUnknownBackend = errors.New("unknown backend")
	errDuplicateKey   = errors.New("key bound twice")
)

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
