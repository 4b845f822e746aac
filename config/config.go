// Package config reads the YAML configuration of the rewrite command
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      Log      `yaml:"log"`
	Simplify Simplify `yaml:"simplify"`
	Eval     Eval     `yaml:"eval"`
}

type Log struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level,omitempty"`
	// Sections whose debug and info records are logged, like strategy or rewrite
	Sections []string `yaml:"sections,omitempty"`
}

type Simplify struct {
	// Fuel bounds the number of rewrites of one simplification
	Fuel int `yaml:"fuel,omitempty"`
	// Rules are the rule groups to simplify with. Empty means all of them
	Rules []string `yaml:"rules,omitempty"`
}

type Eval struct {
	// Impls maps operation names to Go source files implementing them.
	// Relative paths are resolved against the directory of the configuration file
	Impls map[string]string `yaml:"impls,omitempty"`
}

const DefaultFuel = 10_000

func Default() *Config {
	return &Config{
		Log:      Log{Level: "warn"},
		Simplify: Simplify{Fuel: DefaultFuel},
	}
}

// Load reads the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data, path)
}

// Parse parses configuration content. path is used for error messages and to resolve impls
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) validate(path string) error {
	if _, err := c.SlogLevel(); err != nil {
		return errors.Wrapf(err, "%s: log.level", path)
	}
	if c.Simplify.Fuel < 0 {
		return errors.Errorf("%s: simplify.fuel must not be negative, got %d", path, c.Simplify.Fuel)
	}
	for symbol, file := range c.Eval.Impls {
		if file == "" {
			return errors.Errorf("%s: eval.impls: no file given for %s", path, symbol)
		}
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	for symbol, file := range c.Eval.Impls {
		if !filepath.IsAbs(file) {
			c.Eval.Impls[symbol] = filepath.Join(dir, file)
		}
	}
}

// SlogLevel parses the configured log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelWarn, nil
	}
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// Fuel is the configured fuel, or DefaultFuel
func (c *Config) Fuel() int {
	if c.Simplify.Fuel == 0 {
		return DefaultFuel
	}
	return c.Simplify.Fuel
}
