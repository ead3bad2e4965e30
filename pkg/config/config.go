// Package config loads rendering settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings shared by layout and painting. Lengths are
// in points.
type Config struct {
	DPI              float64 `toml:"dpi"`
	MaxFloatAttempts int     `toml:"max_float_attempts"`
	Page             Page    `toml:"page"`
	Bullet           Bullet  `toml:"bullet"`
	Fonts            Fonts   `toml:"fonts"`
}

type Page struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin float64 `toml:"margin"`
}

// Bullet proportions are fractions of the font size.
type Bullet struct {
	Size      float64 `toml:"size"`
	Thickness float64 `toml:"thickness"`
	Descent   float64 `toml:"descent"`
}

// Fonts are paths to TrueType files. Empty paths use the bundled Go fonts.
type Fonts struct {
	Regular   string `toml:"regular"`
	Monospace string `toml:"monospace"`
}

// Default returns an A4 page with standard bullet proportions.
func Default() Config {
	return Config{
		DPI:              96,
		MaxFloatAttempts: 1000,
		Page:             Page{Width: 595, Height: 842, Margin: 36},
		Bullet:           Bullet{Size: 0.35, Thickness: 0.04, Descent: 0.3},
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %g", c.DPI))
	}
	if c.MaxFloatAttempts < 0 {
		errs = append(errs, fmt.Errorf("max_float_attempts must not be negative, got %d", c.MaxFloatAttempts))
	}
	if c.Page.Width <= 0 || c.Page.Height <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %gx%g", c.Page.Width, c.Page.Height))
	}
	if c.Page.Margin < 0 || 2*c.Page.Margin >= c.Page.Width {
		errs = append(errs, fmt.Errorf("page margin %g does not fit a %gpt page", c.Page.Margin, c.Page.Width))
	}
	if c.Bullet.Size <= 0 || c.Bullet.Thickness < 0 || c.Bullet.Descent < 0 {
		errs = append(errs, errors.New("bullet proportions must be non-negative and size positive"))
	}
	for key, path := range map[string]string{"fonts.regular": c.Fonts.Regular, "fonts.monospace": c.Fonts.Monospace} {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		} else if info.IsDir() {
			errs = append(errs, fmt.Errorf("%s: %s is a directory", key, path))
		}
	}
	return errors.Join(errs...)
}
