// Package config loads, validates, and normalizes the TOML configuration for
// checkrun. Defaults live in defaults.go; path fields are tilde-expanded and
// made absolute during Load.
package config
