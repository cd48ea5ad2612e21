// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env files, config files).
// It provides type-safe access to settings needed by the HTTP server, the
// document store and the credential service while keeping configuration
// details separate from request handling.
package config
