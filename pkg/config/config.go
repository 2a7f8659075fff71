// Package config loads the optional sfv configuration file.
//
// The file is selected only by the --config flag or the SFV_CONFIG
// environment variable. There is no discovery and no merging of several
// files; flags given on the command line override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tqbf/sfvcheck/pkg/sfv"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SFV_CONFIG"

type Config struct {
	// Quiet suppresses per-file status lines.
	Quiet bool `yaml:"quiet"`

	// Summary prints a totals line after the run.
	Summary bool `yaml:"summary"`

	// JSON switches output to a JSON document.
	JSON bool `yaml:"json"`

	// ReadErrors is one of abort, missing or bad.
	// Default: abort
	ReadErrors string `yaml:"read_errors"`

	// Exclude lists glob patterns dropped from create mode file lists.
	Exclude []string `yaml:"exclude"`
}

func Default() *Config {
	return &Config{ReadErrors: sfv.ReadErrorAbort.String()}
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded config",
		"path", path,
		"read_errors", cfg.ReadErrors,
		"exclude", len(cfg.Exclude),
	)
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ReadErrors == "" {
		c.ReadErrors = sfv.ReadErrorAbort.String()
	}
	if _, err := sfv.ParseReadErrorPolicy(c.ReadErrors); err != nil {
		return fmt.Errorf("read_errors: %w", err)
	}
	return nil
}

func (c *Config) ReadErrorPolicy() sfv.ReadErrorPolicy {
	p, err := sfv.ParseReadErrorPolicy(c.ReadErrors)
	if err != nil {
		return sfv.ReadErrorAbort
	}
	return p
}
