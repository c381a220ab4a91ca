package config

import (
	"fmt"
	"net/url"
	"os"
)

// Config is the client configuration, read from ~/.kimlik/config.yaml with
// environment overrides.
type Config struct {
	APIURL   string `yaml:"api_url"`
	Language string `yaml:"language"` // "en" | "tr"
	StateDir string `yaml:"state_dir"`
}

func (c *Config) Defaults() {
	if c.APIURL == "" {
		c.APIURL = "http://localhost:8080"
	}
	if c.Language == "" {
		c.Language = "en"
	}
}

// ApplyEnv lets environment variables override file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("KIMLIK_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("KIMLIK_LANG"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("KIMLIK_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute URL", c.APIURL)
	}
	return nil
}
