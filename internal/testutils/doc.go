// Package testutils provides shared helpers for tests across the servicehub
// packages: a real JWT service with a test-only secret, credential cookies,
// HTTP response assertions and a capturing slog handler.
//
// It is imported only from _test.go files.
package testutils
