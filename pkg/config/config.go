// Package config loads stickfigures settings from a TOML file.
//
// Every field has a default matching the classic page layout, so a missing
// file or an empty table is valid:
//
//	[canvas]
//	width = 960
//	height = 600
//	margin = 50
//
//	[animation]
//	duration_ms = 800
//
//	[input]
//	rotate_key = "n"
//
//	[palette]
//	colors = ["#4464AD", "#A4B0F5"]
//
//	[server]
//	addr = "127.0.0.1:8080"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults. Command-line flags are applied on top of the loaded file by the
// CLI.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// Defaults.
const (
	DefaultWidth      = 960
	DefaultHeight     = 600
	DefaultDurationMS = 800
	DefaultAddr       = "127.0.0.1:8080"
)

// Config is the full set of user-tunable settings.
type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Animation Animation `toml:"animation"`
	Input     Input     `toml:"input"`
	Palette   Palette   `toml:"palette"`
	Server    Server    `toml:"server"`
}

// Canvas sizes the browser and export surface.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin float64 `toml:"margin"`
}

// Animation controls glyph transitions.
type Animation struct {
	DurationMS int `toml:"duration_ms"`
}

// Input configures keyboard handling.
type Input struct {
	RotateKey string `toml:"rotate_key"`
}

// Palette lists glyph colors in assignment order.
type Palette struct {
	Colors []string `toml:"colors"`
}

// Server configures the browser session listener.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas:    Canvas{Width: DefaultWidth, Height: DefaultHeight, Margin: scale.DefaultMargin},
		Animation: Animation{DurationMS: DefaultDurationMS},
		Input:     Input{RotateKey: "n"},
		Palette:   Palette{Colors: append([]string(nil), figure.DefaultPalette...)},
		Server:    Server{Addr: DefaultAddr},
	}
}

// Load reads path on top of the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := cfg.decode(string(data)); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, cfg.Validate()
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks ranges and normalizes palette colors and the rotate key
// in place.
func (c *Config) Validate() error {
	if c.Canvas.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas margin must not be negative")
	}
	if c.Canvas.Width <= 2*c.Canvas.Margin || c.Canvas.Height <= 2*c.Canvas.Margin {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas %gx%g leaves no plot area inside a %g margin", c.Canvas.Width, c.Canvas.Height, c.Canvas.Margin)
	}
	if c.Animation.DurationMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "animation duration must not be negative")
	}
	if err := errors.ValidateKey(c.Input.RotateKey); err != nil {
		return err
	}
	c.Input.RotateKey = strings.ToLower(c.Input.RotateKey)
	if len(c.Palette.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette must have at least one color")
	}
	for i, col := range c.Palette.Colors {
		hex, err := errors.ValidateColor(col)
		if err != nil {
			return err
		}
		c.Palette.Colors[i] = hex
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server address cannot be empty")
	}
	return nil
}

// ScaleCanvas returns the drawing surface described by c.
func (c Config) ScaleCanvas() scale.Canvas {
	return scale.Canvas{
		Width:  c.Canvas.Width,
		Height: c.Canvas.Height,
		Margin: scale.UniformMargin(c.Canvas.Margin),
	}
}

// Duration returns the transition length.
func (c Config) Duration() time.Duration {
	return time.Duration(c.Animation.DurationMS) * time.Millisecond
}

// FigureOptions returns the renderer options described by c.
func (c Config) FigureOptions() []figure.Option {
	return []figure.Option{
		figure.WithPalette(c.Palette.Colors),
		figure.WithDuration(c.Duration()),
	}
}
