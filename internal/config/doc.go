// Package config loads application settings from defaults, an optional config.yaml
// and MARKET_-prefixed environment variables, and validates them before any
// component is constructed.
package config
