// Package config loads the settings of the trellis map viewer.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// MaxZoom is the deepest zoom a configuration may start at.
const MaxZoom = 19

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Map is the initial view.
type Map struct {
	Lat  float64 `toml:"lat"`
	Lon  float64 `toml:"lon"`
	Zoom int     `toml:"zoom"`
}

type Config struct {
	Window Window `toml:"window"`
	Map    Map    `toml:"map"`
	// Layers lists shapefiles to load at startup.
	Layers []string `toml:"layers"`
	// Skin is a TOML skin file; empty uses the built-in skin.
	Skin string `toml:"skin"`
	// Debug draws layout bounds and the tile grid.
	Debug bool `toml:"debug"`
	// Round snaps laid out widgets to whole pixels.
	Round bool `toml:"round"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{Width: 1024, Height: 768, Title: "Trellis"},
		// Approx. center of contiguous US (Kansas)
		Map:   Map{Lat: 39.8333, Lon: -98.5833, Zoom: 4},
		Round: true,
	}
}

// Load reads the TOML file at path over the defaults. Relative layer and
// skin paths are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("loading config %s: unknown keys %v", path, undecoded)
	}

	dir := filepath.Dir(path)
	for i, l := range cfg.Layers {
		cfg.Layers[i] = resolve(dir, l)
	}
	cfg.Skin = resolve(dir, cfg.Skin)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Validate reports every out of range value.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Map.Lat < -90 || c.Map.Lat > 90 {
		errs = append(errs, fmt.Errorf("%w: latitude %v", ErrInvalid, c.Map.Lat))
	}
	if c.Map.Lon < -180 || c.Map.Lon > 180 {
		errs = append(errs, fmt.Errorf("%w: longitude %v", ErrInvalid, c.Map.Lon))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > MaxZoom {
		errs = append(errs, fmt.Errorf("%w: zoom %d", ErrInvalid, c.Map.Zoom))
	}
	return errors.Join(errs...)
}
