// Package config loads the viewer's TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leterax/go-universe/pkg/nav"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a loaded value is out of range
var ErrInvalid = errors.New("invalid config")

// Config is the full viewer configuration
type Config struct {
	Window     Window     `toml:"window"`
	Navigation nav.Config `toml:"navigation"`
}

// Window configures the viewer window
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
	// Vertical field of view in degrees
	FOV float64 `toml:"fov"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 800,
			Title:  "Universe",
			VSync:  true,
			FOV:    45,
		},
		Navigation: nav.DefaultConfig(),
	}
}

// Decode reads TOML from r on top of the defaults. Keys the file leaves out
// keep their default value; unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("failed to decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Validate checks the window settings and the navigation tuning
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		return fmt.Errorf("%w: window.fov must be in (0, 180), got %v", ErrInvalid, c.Window.FOV)
	}
	if err := c.Navigation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
