package main

import (
	"github.com/cmdroute-dev/cmdroute/internal/config"
	"github.com/cmdroute-dev/cmdroute/pkg/manifest"
	"github.com/cmdroute-dev/cmdroute/pkg/route"
)

// loadConfig resolves the tool configuration, honoring --config.
func loadConfig(configPath *string) (*config.Config, error) {
	return config.Load(*configPath)
}

// buildOptions derives manifest build options from the configuration.
func buildOptions(cfg *config.Config) []manifest.BuildOption {
	var opts []manifest.BuildOption
	if cfg.CaseInsensitive {
		opts = append(opts, manifest.WithCaseInsensitiveLiterals())
	}
	return opts
}

// loadRoutes loads the manifest and builds a frozen route set from it.
// manifestPath overrides the configured path when non-empty.
func loadRoutes(cfg *config.Config, manifestPath string) (*manifest.Manifest, *route.RouteSet, error) {
	path := cfg.Manifest
	if manifestPath != "" {
		path = manifestPath
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	set, err := m.Build(buildOptions(cfg)...)
	if err != nil {
		return m, nil, err
	}
	return m, set, nil
}
