// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document store from the HTTP
// layer, allowing handlers to remain independent of a specific driver. Each
// method corresponds to exactly one round-trip to the backing store.
package store
