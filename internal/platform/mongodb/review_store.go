package mongodb

import (
	"context"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewStore implements store.ReviewStore over the reviews collection.
type ReviewStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.ReviewStore = (*ReviewStore)(nil)

// NewReviewStore creates a ReviewStore backed by coll.
func NewReviewStore(coll *mongo.Collection, logger *slog.Logger) *ReviewStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewStore{coll: coll, logger: logger.With(slog.String("store", "review"))}
}

// Create implements store.ReviewStore.Create.
func (s *ReviewStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		s.log(ctx).Error("failed to insert review", "error", redact.Error(err))
		return nil, store.NewStoreError("review", "insert", "insert failed", MapError(err))
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

// List implements store.ReviewStore.List.
func (s *ReviewStore) List(ctx context.Context) ([]domain.Document, error) {
	return s.find(ctx, bson.M{})
}

// ListByServiceID implements store.ReviewStore.ListByServiceID.
func (s *ReviewStore) ListByServiceID(ctx context.Context, serviceID string) ([]domain.Document, error) {
	return s.find(ctx, bson.M{domain.FieldReviewServiceID: serviceID})
}

// ListByEmail implements store.ReviewStore.ListByEmail.
func (s *ReviewStore) ListByEmail(ctx context.Context, email string) ([]domain.Document, error) {
	return s.find(ctx, bson.M{domain.FieldEmail: email})
}

// Update implements store.ReviewStore.Update.
func (s *ReviewStore) Update(ctx context.Context, id string, fields domain.Document) (*store.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{domain.FieldID: oid}, setUpdate(fields))
	if err != nil {
		s.log(ctx).Error("failed to update review", "error", redact.Error(err), "review_id", id)
		return nil, store.NewStoreError("review", "update", "update failed", MapError(err))
	}
	return updateResult(res), nil
}

// DeleteOwned implements store.ReviewStore.DeleteOwned.
func (s *ReviewStore) DeleteOwned(ctx context.Context, email, serviceID string) (*store.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{
		domain.FieldEmail:           email,
		domain.FieldReviewServiceID: serviceID,
	})
	if err != nil {
		s.log(ctx).Error("failed to delete review", "error", redact.Error(err))
		return nil, store.NewStoreError("review", "delete", "delete failed", MapError(err))
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Count implements store.ReviewStore.Count.
func (s *ReviewStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, store.NewStoreError("review", "count", "count failed", MapError(err))
	}
	return n, nil
}

func (s *ReviewStore) find(ctx context.Context, filter bson.M) ([]domain.Document, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		s.log(ctx).Error("failed to query reviews", "error", redact.Error(err))
		return nil, store.NewStoreError("review", "find", "query failed", MapError(err))
	}

	var ms []bson.M
	if err := cur.All(ctx, &ms); err != nil {
		return nil, store.NewStoreError("review", "find", "cursor failed", MapError(err))
	}
	return toDocuments(ms), nil
}

func (s *ReviewStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
