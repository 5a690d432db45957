// Package config loads FUEL's process-wide settings: environment variables
// via caarlos0/env, and an optional fuel.yaml manifest for static
// per-project settings (library search path, default module name).
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Env holds the settings FUEL reads from the process environment.
type Env struct {
	LibPath  []string `env:"FUEL_LIBPATH" envSeparator:":"`
	MaxSteps int      `env:"FUEL_MAX_STEPS" envDefault:"0"`
	Trace    bool     `env:"FUEL_TRACE" envDefault:"false"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Manifest is the optional fuel.yaml project file: library search path
// entries and a default module name, read once at startup.
type Manifest struct {
	LibPath    []string `yaml:"libpath"`
	ModuleName string   `yaml:"module"`
}

// LoadManifest reads and parses a fuel.yaml manifest at path. A missing
// file is not an error; it yields a zero Manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
