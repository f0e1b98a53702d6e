package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "cmdroute.toml"

	// DefaultManifest is the default route manifest path.
	DefaultManifest = "cmdroute.yaml"

	// DefaultServeAddr is the default debug server listen address.
	DefaultServeAddr = "localhost:8177"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "cmdroute"
)

// Config is the cmdroute.toml schema.
type Config struct {
	// Manifest is the route manifest path.
	Manifest string `toml:"manifest"`

	// CaseInsensitive makes literal segments match case-insensitively.
	CaseInsensitive bool `toml:"case_insensitive"`

	// Serve configures the debug server.
	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures `cmdroute serve`.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// MetricsNamespace is the Prometheus namespace.
	MetricsNamespace string `toml:"metrics_namespace"`

	// Tracing enables OpenTelemetry spans around resolutions.
	Tracing bool `toml:"tracing"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Manifest: DefaultManifest,
		Serve: ServeConfig{
			Addr:             DefaultServeAddr,
			MetricsNamespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads the configuration from path, or from ConfigFileName in
// the working directory when path is empty. A missing file is not an
// error: defaults apply.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest must not be empty")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must not be empty")
	}
	return nil
}
