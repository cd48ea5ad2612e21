package mongodb

import (
	"fmt"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// parseID converts a path identifier to an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// idString renders an inserted or stored identifier the way clients see it.
func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// toDocument converts a decoded BSON document into a domain.Document with
// plain maps and slices, and the identifier as a hex string.
func toDocument(m bson.M) domain.Document {
	out := make(domain.Document, len(m))
	for k, v := range m {
		if k == domain.FieldID {
			out[k] = idString(v)
			continue
		}
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return map[string]any(toDocument(t))
	case bson.D:
		return map[string]any(toDocument(t.Map()))
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}

// toDocuments converts a cursor result set.
func toDocuments(ms []bson.M) []domain.Document {
	out := make([]domain.Document, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDocument(m))
	}
	return out
}

// setUpdate builds a $set update that never touches the identifier.
func setUpdate(fields domain.Document) bson.M {
	return bson.M{"$set": bson.M(fields.Without(domain.FieldID))}
}

func updateResult(res *mongo.UpdateResult) *store.UpdateResult {
	out := &store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := idString(res.UpsertedID)
		out.UpsertedID = &id
	}
	return out
}
