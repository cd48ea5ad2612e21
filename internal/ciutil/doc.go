// Package ciutil provides utilities for CI and environment-specific functionality.
//
// It centralizes CI detection and the environment variables integration
// tests read to locate a document store, so that test suites behave the same
// way locally (skip when no store is configured) and in CI (fail loudly).
package ciutil
