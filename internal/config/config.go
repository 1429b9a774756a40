package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config is the top-level offdeck configuration, corresponding to .offdeck.yml.
type Config struct {
	SourceDir     string   `yaml:"source_dir" koanf:"source_dir"`
	OutputDir     string   `yaml:"output_dir" koanf:"output_dir"`
	CacheDir      string   `yaml:"cache_dir" koanf:"cache_dir"`
	Workers       int      `yaml:"workers" koanf:"workers"`
	FetchTimeout  int      `yaml:"fetch_timeout" koanf:"fetch_timeout"`     // seconds
	ChartStagger  int      `yaml:"chart_stagger" koanf:"chart_stagger"`     // milliseconds between canvas inits
	ExtraAllow    []string `yaml:"extra_allow" koanf:"extra_allow"`         // additional URL allow globs
	ServePort     int      `yaml:"serve_port" koanf:"serve_port"`
	ServeAllowAll bool     `yaml:"serve_allow_all" koanf:"serve_allow_all"` // allow all CORS origins
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (OFFDECK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: OFFDECK_WORKERS -> workers, etc.
	if err := k.Load(env.Provider("OFFDECK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "OFFDECK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.FetchTimeout < 1 {
		return fmt.Errorf("fetch_timeout must be at least 1 second")
	}
	if c.ChartStagger < 0 {
		return fmt.Errorf("chart_stagger must be non-negative")
	}
	if c.ServePort < 0 || c.ServePort > 65535 {
		return fmt.Errorf("serve_port %d out of range", c.ServePort)
	}
	return nil
}
