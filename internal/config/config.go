// Package config reads the environment provided to generators by `go generate`.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds derivation environment, every value is optional.
type Config struct {
	// Package is the fallback name for declarations without explicit name.
	Package string `env:"GOPACKAGE"`
	// File is the name of the file holding the generate directive.
	File string `env:"GOFILE"`
	// Line is the generate directive line number.
	Line int `env:"GOLINE"`
}

// Load reads config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads config from the provided environment, which is useful for tests.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
