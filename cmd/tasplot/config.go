package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"tasplot.dev/plotter"
	"tasplot.dev/scrollback"
)

// config is the contents of the configuration file.
type config struct {
	Plotter    plotter.Config `toml:"plotter"`
	Scrollback int            `toml:"scrollback"`
	Device     string         `toml:"device"`
}

func defaultConfig() config {
	return config{
		Plotter:    plotter.DefaultConfig(),
		Scrollback: scrollback.DefaultDepth,
	}
}

// loadConfig reads the file at path over the defaults. Unknown keys are
// errors.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return c, c.validate()
}

func (c config) validate() error {
	if c.Scrollback < 1 {
		return fmt.Errorf("config: scrollback %d must be positive", c.Scrollback)
	}
	return c.Plotter.Validate()
}
