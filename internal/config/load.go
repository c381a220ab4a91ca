package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the config file at path. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			var cfg Config
			cfg.Defaults()
			return &cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader decodes a config document. Unknown fields are rejected.
func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
