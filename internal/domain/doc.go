// Package domain contains the core business entities of the marketplace:
// services, the reviews attached to them, and the users who own both. The
// entities are schemaless documents; this package fixes only the field names
// the API relies on and the errors shared across layers.
package domain
