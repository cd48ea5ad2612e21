package memory

import (
	"fmt"
	"sync"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collection is an ordered, mutex-guarded list of documents. Every document
// handed in or out is deep-copied so callers never alias stored state.
type collection struct {
	mu   sync.RWMutex
	docs []domain.Document
}

// insert stores a copy of doc, assigning an identifier if it has none.
// A caller-supplied _id of any type is kept as is.
// check, when non-nil, runs under the write lock against the existing
// documents and aborts the insert on error.
func (c *collection) insert(doc domain.Document, check func([]domain.Document) error) (string, error) {
	stored := doc.Clone()
	if stored == nil {
		stored = domain.Document{}
	}

	idValue, ok := stored[domain.FieldID]
	if s, isString := idValue.(string); !ok || idValue == nil || (isString && s == "") {
		idValue = primitive.NewObjectID().Hex()
		stored[domain.FieldID] = idValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if check != nil {
		if err := check(c.docs); err != nil {
			return "", err
		}
	}
	for _, existing := range c.docs {
		if sameValue(existing[domain.FieldID], idValue) {
			return "", store.ErrDuplicate
		}
	}
	c.docs = append(c.docs, stored)
	return idString(idValue), nil
}

// idString renders an identifier the way clients see it.
func idString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// find returns copies of the documents matching filter, capped at limit
// when limit is non-zero. A negative limit is treated as its absolute value.
func (c *collection) find(filter domain.Document, limit int64) []domain.Document {
	if limit < 0 {
		limit = -limit
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Document, 0)
	for _, doc := range c.docs {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if doc.Matches(filter) {
			out = append(out, doc.Clone())
		}
	}
	return out
}

// updateOne sets fields on the first document matching filter.
func (c *collection) updateOne(filter domain.Document, fields domain.Document) *store.UpdateResult {
	set := fields.Without(domain.FieldID).Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	res := &store.UpdateResult{Acknowledged: true}
	for _, doc := range c.docs {
		if !doc.Matches(filter) {
			continue
		}
		res.MatchedCount = 1
		changed := false
		for k, v := range set {
			if old, ok := doc[k]; !ok || !sameValue(old, v) {
				changed = true
			}
			doc[k] = v
		}
		if changed {
			res.ModifiedCount = 1
		}
		break
	}
	return res
}

// deleteOne removes the first document matching filter.
func (c *collection) deleteOne(filter domain.Document) *store.DeleteResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &store.DeleteResult{Acknowledged: true}
	for i, doc := range c.docs {
		if doc.Matches(filter) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			res.DeletedCount = 1
			break
		}
	}
	return res
}

func (c *collection) count() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs))
}

// sameValue compares scalars directly; composite values are always treated
// as modified.
func sameValue(a, b any) bool {
	switch a.(type) {
	case map[string]any, domain.Document, []any:
		return false
	}
	switch b.(type) {
	case map[string]any, domain.Document, []any:
		return false
	}
	return a == b
}

// normalizeID parses id as a 24-character hex ObjectID, matching the mongo
// store, and returns its canonical lowercase form.
func normalizeID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", store.ErrInvalidID
	}
	return oid.Hex(), nil
}
