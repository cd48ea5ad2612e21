package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names the API queries on. Everything else in a document is opaque.
const (
	// FieldID is the store-assigned identifier.
	FieldID = "_id"
	// FieldEmail is the owner key on reviews and users.
	FieldEmail = "email"
	// FieldReviewServiceID is the caller-supplied business id linking a
	// review to a service. It is not the review's own identifier.
	FieldReviewServiceID = "id"
	// FieldServiceCreator is the owner key on services.
	FieldServiceCreator = "serviceCreator"
)

// Document is a schemaless record as stored in a collection.
type Document map[string]any

// ParseDocument decodes a JSON object. Arrays, scalars and null are rejected
// with ErrInvalidDocument.
func ParseDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidDocument)
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// StringField returns the named field if it holds a string.
func (d Document) StringField(name string) (string, bool) {
	s, ok := d[name].(string)
	return s, ok
}

// Without returns a shallow copy of d minus the given fields.
func (d Document) Without(fields ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}

// Clone returns a deep copy of d. Nested objects and arrays are copied so the
// result shares no mutable state with d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Matches reports whether every key in filter is present in d with an equal
// value. Filter values must be scalars (strings, numbers, booleans); this
// covers the equality-only filters the API issues.
func (d Document) Matches(filter Document) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !scalarEqual(got, want) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	switch a.(type) {
	case map[string]any, Document, []any:
		return false
	}
	return a == b
}
