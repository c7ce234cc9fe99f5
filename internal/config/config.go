package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	BackendAWS        = "aws"
	BackendKubernetes = "kubernetes"

	DefaultBackend   = BackendAWS
	DefaultCount     = 10
	DefaultPrefix    = "generated-secret"
	DefaultNamespace = "default"
	DefaultLogLevel  = "warn"

	EnvConfig      = "SECRET_POPULATOR_CONFIG"
	EnvEndpointURL = "SECRET_POPULATOR_ENDPOINT_URL"
	EnvBackend     = "SECRET_POPULATOR_BACKEND"
	EnvNamespace   = "SECRET_POPULATOR_NAMESPACE"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds the resolved settings for one invocation
type Config struct {
	Backend     string `yaml:"backend"`
	EndpointURL string `yaml:"endpointURL"`
	Region      string `yaml:"region"`
	Profile     string `yaml:"profile"`
	Namespace   string `yaml:"namespace"`
	Kubeconfig  string `yaml:"kubeconfig"`
	Count       uint64 `yaml:"count"`
	Prefix      string `yaml:"prefix"`
	LogLevel    string `yaml:"logLevel"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Backend:   DefaultBackend,
		Namespace: DefaultNamespace,
		Count:     DefaultCount,
		Prefix:    DefaultPrefix,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "secret-populator", "config.yaml"), nil
}

// Resolve loads the config file named by path, $SECRET_POPULATOR_CONFIG or
// the default location, then applies environment overrides.
// A missing file at the default location is not an error.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	explicit := true
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	cfg.applyEnv(getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvEndpointURL); v != "" {
		c.EndpointURL = v
	}
	if v := getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := getenv(EnvNamespace); v != "" {
		c.Namespace = v
	}
}

// Validate checks the enumerated fields
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAWS, BackendKubernetes:
	default:
		return fmt.Errorf("unknown backend %q (expected %s or %s)", c.Backend, BackendAWS, BackendKubernetes)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	return nil
}
