package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the room, the files it persists to and the optional
// scenario it starts with.
type Config struct {
	Room     RoomConfig     `yaml:"room"`
	TickRate int            `yaml:"tick_rate"`
	LogPath  string         `yaml:"log_path"`
	SavePath string         `yaml:"save_path"`
	LogLevel string         `yaml:"log_level"`
	Window   WindowConfig   `yaml:"window"`
	Defaults RobotDefaults  `yaml:"defaults"`
	Scenario ScenarioConfig `yaml:"scenario"`
}

type RoomConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RobotDefaults are used for robots added from the keyboard.
type RobotDefaults struct {
	Speed     float64 `yaml:"speed"`
	TurnStep  float64 `yaml:"turn_step"`
	Clockwise bool    `yaml:"clockwise"`
}

type ScenarioConfig struct {
	Obstacles []PointConfig `yaml:"obstacles"`
	Robots    []RobotConfig `yaml:"robots"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RobotConfig places one robot. Kind is "manual" or "auto".
type RobotConfig struct {
	Kind         string  `yaml:"kind"`
	ID           int     `yaml:"id"`
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Speed        float64 `yaml:"speed"`
	TurnStep     float64 `yaml:"turn_step,omitempty"`
	Clockwise    *bool   `yaml:"clockwise,omitempty"`
	Angle        float64 `yaml:"angle,omitempty"`
	ViewDistance int     `yaml:"view_distance,omitempty"`
}

const (
	KindManual = "manual"
	KindAuto   = "auto"
)

// Default returns the configuration of the stock 700x500 room.
func Default() *Config {
	return &Config{
		Room:     RoomConfig{Width: 700, Height: 500},
		TickRate: 60,
		LogPath:  "log.json",
		SavePath: "save.json",
		LogLevel: "info",
		Window:   WindowConfig{Width: 900, Height: 500, Title: "Robot Simulation"},
		Defaults: RobotDefaults{Speed: 1, TurnStep: 45, Clockwise: true},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML loads config from a YAML reader on top of the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values a room cannot start without.
func (c *Config) Validate() error {
	if !(c.Room.Width > 0) || !(c.Room.Height > 0) {
		return fmt.Errorf("room dimensions must be positive, got %vx%v", c.Room.Width, c.Room.Height)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.LogPath == "" || c.SavePath == "" {
		return fmt.Errorf("log_path and save_path must be set")
	}
	for i, r := range c.Scenario.Robots {
		if r.Kind != KindManual && r.Kind != KindAuto {
			return fmt.Errorf("scenario robot %d: unknown kind %q", i, r.Kind)
		}
	}
	return nil
}

// IsClockwise resolves the robot's rotation direction against the defaults.
func (r RobotConfig) IsClockwise(d RobotDefaults) bool {
	if r.Clockwise == nil {
		return d.Clockwise
	}
	return *r.Clockwise
}
