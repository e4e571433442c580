// Package config loads service settings from a .env file, an optional
// config.yaml and LINGODECK_-prefixed environment variables, and validates
// them before any component is constructed.
package config
