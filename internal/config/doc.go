// Package config loads, normalizes, and validates voskcap configuration.
//
// It supplies defaults, reads an optional TOML file, applies VOSKCAP_*
// environment overrides, and expands user paths (including ~). Command-line
// flags are applied on top by the cli package.
package config
