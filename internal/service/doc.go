// Package service contains application use cases that span more than one
// store. Single-collection operations are served by the store interfaces
// directly from the API layer; this package holds the operations that
// coordinate several of them.
//
// Services receive their store dependencies through constructor injection and
// never depend on a specific backend (internal/platform/mongodb or
// internal/platform/memory).
package service
