// Package mongodb implements the store interfaces on top of the official
// MongoDB Go driver. A single client is connected at startup and shared by
// every store for the life of the process; handlers receive the stores, never
// the client.
package mongodb
