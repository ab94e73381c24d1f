package vlist

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the construction-time layout parameters.
//
//	fixed_row_height = 1.0
//	margin = 0.0
//	locator = "binary"   # or "linear"
//	scroll_step = 1.0
type Config struct {
	FixedRowHeight float64 `toml:"fixed_row_height"`
	Margin         float64 `toml:"margin"`
	Locator        string  `toml:"locator"`
	ScrollStep     float64 `toml:"scroll_step"`
}

// DefaultConfig returns one-line rows, no margin, binary search.
func DefaultConfig() Config {
	return Config{
		FixedRowHeight: 1,
		Locator:        "binary",
		ScrollStep:     1,
	}
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values are usable.
func (c Config) Validate() error {
	if c.FixedRowHeight <= 0 {
		return fmt.Errorf("fixed_row_height must be > 0, got %g", c.FixedRowHeight)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must be >= 0, got %g", c.Margin)
	}
	if c.ScrollStep <= 0 {
		return fmt.Errorf("scroll_step must be > 0, got %g", c.ScrollStep)
	}
	if _, err := LocatorByName(c.Locator); err != nil {
		return err
	}
	return nil
}
