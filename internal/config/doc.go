// Package config loads the server settings from defaults, an optional
// config.yaml and ZEN_-prefixed environment variables, and validates them
// before any component starts.
package config
