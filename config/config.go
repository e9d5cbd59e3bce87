package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"torus-snake/game/types"
)

const (
	FrontendRaylib   = "raylib"
	FrontendTerminal = "terminal"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("config.schema.json", schemaJSON)

type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SnakeConfig struct {
	Speed          float64 `yaml:"speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	AllowReversal  bool    `yaml:"allow_reversal"`
	StartDirection string  `yaml:"start_direction"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type SpectateConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Screen   Size           `yaml:"screen"`
	Grid     Size           `yaml:"grid"`
	FPS      int            `yaml:"fps"`
	Snake    SnakeConfig    `yaml:"snake"`
	Walls    [][]int        `yaml:"walls"`
	Sprites  string         `yaml:"sprites"`
	Frontend string         `yaml:"frontend"`
	Audio    AudioConfig    `yaml:"audio"`
	Spectate SpectateConfig `yaml:"spectate"`
	Seed     uint64         `yaml:"seed"`
	LogLevel string         `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Screen: Size{Width: 640, Height: 640},
		Grid:   Size{Width: 32, Height: 32},
		FPS:    60,
		Snake: SnakeConfig{
			Speed:          0.1,
			SpeedIncrement: 0.02,
			StartDirection: "up",
		},
		Sprites:  "sprites.bmp",
		Frontend: FrontendRaylib,
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file and overlays it on the defaults.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the schema, then decodes it over the defaults.
func Parse(raw []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	v, err := toJSONValue(doc)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// toJSONValue converts a YAML document into the value shapes the schema validator expects.
func toJSONValue(doc any) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the constraints the schema cannot express, such as walls inside the grid.
func (c Config) Validate() error {
	switch {
	case c.Grid.Width <= 0 || c.Grid.Height <= 0:
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	case c.Screen.Width < c.Grid.Width || c.Screen.Height < c.Grid.Height:
		return fmt.Errorf("%w: screen %dx%d leaves cells under one pixel for grid %dx%d",
			ErrInvalid, c.Screen.Width, c.Screen.Height, c.Grid.Width, c.Grid.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Snake.Speed < 0 || c.Snake.SpeedIncrement < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	case c.Frontend != FrontendRaylib && c.Frontend != FrontendTerminal:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalid, c.Frontend)
	}

	if _, err := types.ParseDirection(c.Snake.StartDirection); err != nil {
		return fmt.Errorf("%w: snake.start_direction: %v", ErrInvalid, err)
	}

	grid := types.Grid{Width: c.Grid.Width, Height: c.Grid.Height}
	for i, w := range c.Walls {
		if len(w) != 2 {
			return fmt.Errorf("%w: wall %d needs two coordinates", ErrInvalid, i)
		}
		if p := (types.Point{X: w[0], Y: w[1]}); !grid.Contains(p) {
			return fmt.Errorf("%w: wall %v outside %dx%d grid", ErrInvalid, p, grid.Width, grid.Height)
		}
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// WallPoints returns the configured walls as grid cells
func (c Config) WallPoints() []types.Point {
	walls := make([]types.Point, 0, len(c.Walls))
	for _, w := range c.Walls {
		if len(w) == 2 {
			walls = append(walls, types.Point{X: w[0], Y: w[1]})
		}
	}
	return walls
}

// SlogLevel maps log_level onto slog; unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
}
