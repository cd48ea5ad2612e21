// Package memory provides an in-process implementation of the store
// interfaces. It mirrors the document store's observable behaviour
// (ObjectID-format identifiers, insertion order, equality filters, field
// merge updates, zero-count results for misses) and is used for local
// development without MongoDB and by the HTTP tests.
package memory
