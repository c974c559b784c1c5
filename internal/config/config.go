// Package config loads the calc command's configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"

	"github.com/el2nil/calculator"
	"github.com/el2nil/calculator/internal/display"
)

// Config is the contents of a configuration file. Fields missing from the
// file keep their default values.
type Config struct {
	// Display is the number format of the display.
	Display display.Formatter `json:"display"`
	// Slots is the file holding saved programs.
	Slots string `json:"slots"`
	// History is the REPL history file. Empty disables history.
	History string `json:"history"`
	// Verbosity is the log level, 0 for errors only.
	Verbosity int `json:"verbosity"`
	// Variables are bound in every new engine.
	Variables map[string]float64 `json:"variables"`
	// Aliases are extra key aliases, as for calculator.Aliases.
	Aliases map[string]string `json:"aliases"`
	// GraphVariable is the variable plot samples by default.
	GraphVariable string `json:"graphVariable"`
}

// Dir returns the directory holding the configuration file and, by default,
// the files it names.
func Dir() string {
	d, err := os.UserConfigDir()
	if err != nil {
		return ".calc"
	}
	return filepath.Join(d, "calc")
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return defaultIn(Dir())
}

func defaultIn(dir string) Config {
	return Config{
		Display:       display.DefaultFormatter(),
		Slots:         filepath.Join(dir, "slots.yaml"),
		History:       filepath.Join(dir, "history"),
		GraphVariable: "M",
	}
}

// Load reads a configuration file. An empty path means config.yaml in Dir.
// A missing file yields the defaults. Relative paths in the file are
// relative to the file's directory.
func Load(path string) (Config, error) {
	if path == "" {
		path = filepath.Join(Dir(), "config.yaml")
	}
	dir := filepath.Dir(path)
	c := defaultIn(dir)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Slots = resolve(dir, c.Slots)
	c.History = resolve(dir, c.History)
	if c.Verbosity < 0 {
		return c, fmt.Errorf("config %s: negative verbosity %d", path, c.Verbosity)
	}
	return c, nil
}

func resolve(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// EngineOptions returns the engine options the configuration implies.
func (c Config) EngineOptions() []calculator.Option {
	if len(c.Variables) == 0 {
		return nil
	}
	return []calculator.Option{calculator.SetVars(c.Variables)}
}

// KeyOptions returns the key scanner options the configuration implies.
func (c Config) KeyOptions() []calculator.KeyOption {
	if len(c.Aliases) == 0 {
		return nil
	}
	return []calculator.KeyOption{calculator.Aliases(c.Aliases)}
}
