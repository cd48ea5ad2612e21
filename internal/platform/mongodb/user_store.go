package mongodb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore implements store.UserStore over the users collection. Email
// uniqueness relies on the index created by DB.EnsureIndexes.
type UserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore backed by coll.
func NewUserStore(coll *mongo.Collection, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{coll: coll, logger: logger.With(slog.String("store", "user"))}
}

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		if isEmailIndexViolation(err) {
			return nil, store.NewStoreError("user", "insert", "duplicate email", store.ErrEmailExists)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert user", "error", redact.Error(err))
		return nil, store.NewStoreError("user", "insert", "insert failed", MapError(err))
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

// isEmailIndexViolation distinguishes the email index from other unique
// keys such as a caller-supplied duplicate _id.
func isEmailIndexViolation(err error) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), emailIndexName)
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, store.NewStoreError("user", "count", "count failed", MapError(err))
	}
	return n, nil
}
