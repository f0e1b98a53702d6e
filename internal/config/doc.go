// Package config loads the optional cmdroute.toml configuration for
// the cmdroute CLI tool. Library users of pkg/route never touch this;
// everything here feeds command-line defaults.
package config
