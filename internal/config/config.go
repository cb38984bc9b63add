package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the config schema version this build reads and writes.
const CurrentVersion = 1

// Config captures a project's crosswind.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	Tailwind TailwindConfig `yaml:"tailwind"`
	Serve    ServeConfig    `yaml:"serve"`
}

// TailwindConfig selects the tailwindcss release and its build inputs.
// Input and Output are relative to the project root unless absolute.
// Binary, when set, skips release resolution and runs that executable.
type TailwindConfig struct {
	Version string `yaml:"version"`
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Minify  *bool  `yaml:"minify,omitempty"`
	Binary  string `yaml:"binary,omitempty"`
}

// MinifyValue returns the effective minify flag applying defaults.
func (t TailwindConfig) MinifyValue() bool {
	if t.Minify == nil {
		return true
	}
	return *t.Minify
}

// ServeConfig describes the serving process dev runs next to the watcher.
type ServeConfig struct {
	Command string   `yaml:"command"`
	Address string   `yaml:"address,omitempty"`
	Port    int      `yaml:"port,omitempty"`
	Watch   []string `yaml:"watch,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Tailwind: TailwindConfig{
			Version: "latest",
			Input:   "tailwind.css",
			Output:  "assets/tailwind.css",
			Minify:  boolPtr(true),
		},
		Serve: ServeConfig{
			Command: "go run .",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to defaults when the YAML omits
// them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Tailwind.Version == "" {
		c.Tailwind.Version = defaults.Tailwind.Version
	}
	if c.Tailwind.Input == "" {
		c.Tailwind.Input = defaults.Tailwind.Input
	}
	if c.Tailwind.Output == "" {
		c.Tailwind.Output = defaults.Tailwind.Output
	}
	if c.Tailwind.Minify == nil {
		c.Tailwind.Minify = boolPtr(true)
	}
	if c.Serve.Command == "" {
		c.Serve.Command = defaults.Serve.Command
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
