package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceStore implements store.ServiceStore over the services collection.
type ServiceStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.ServiceStore = (*ServiceStore)(nil)

// NewServiceStore creates a ServiceStore backed by coll.
func NewServiceStore(coll *mongo.Collection, logger *slog.Logger) *ServiceStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceStore{coll: coll, logger: logger.With(slog.String("store", "service"))}
}

// Create implements store.ServiceStore.Create.
func (s *ServiceStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	res, err := s.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		s.log(ctx).Error("failed to insert service", "error", redact.Error(err))
		return nil, store.NewStoreError("service", "insert", "insert failed", MapError(err))
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

// List implements store.ServiceStore.List.
func (s *ServiceStore) List(ctx context.Context, limit int64) ([]domain.Document, error) {
	opts := options.Find()
	if limit != 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, bson.M{}, opts)
}

// GetByID implements store.ServiceStore.GetByID.
func (s *ServiceStore) GetByID(ctx context.Context, id string) (domain.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var m bson.M
	err = s.coll.FindOne(ctx, bson.M{domain.FieldID: oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrServiceNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to find service", "error", redact.Error(err), "service_id", id)
		return nil, store.NewStoreError("service", "find", "find one failed", MapError(err))
	}
	return toDocument(m), nil
}

// ListByCreator implements store.ServiceStore.ListByCreator.
func (s *ServiceStore) ListByCreator(ctx context.Context, email string) ([]domain.Document, error) {
	return s.find(ctx, bson.M{domain.FieldServiceCreator: email}, nil)
}

// Update implements store.ServiceStore.Update.
func (s *ServiceStore) Update(ctx context.Context, id string, fields domain.Document) (*store.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{domain.FieldID: oid}, setUpdate(fields))
	if err != nil {
		s.log(ctx).Error("failed to update service", "error", redact.Error(err), "service_id", id)
		return nil, store.NewStoreError("service", "update", "update failed", MapError(err))
	}
	return updateResult(res), nil
}

// Delete implements store.ServiceStore.Delete.
func (s *ServiceStore) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{domain.FieldID: oid})
	if err != nil {
		s.log(ctx).Error("failed to delete service", "error", redact.Error(err), "service_id", id)
		return nil, store.NewStoreError("service", "delete", "delete failed", MapError(err))
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Count implements store.ServiceStore.Count.
func (s *ServiceStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, store.NewStoreError("service", "count", "count failed", MapError(err))
	}
	return n, nil
}

func (s *ServiceStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Document, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		s.log(ctx).Error("failed to query services", "error", redact.Error(err))
		return nil, store.NewStoreError("service", "find", "query failed", MapError(err))
	}

	var ms []bson.M
	if err := cur.All(ctx, &ms); err != nil {
		return nil, store.NewStoreError("service", "find", "cursor failed", MapError(err))
	}
	return toDocuments(ms), nil
}

func (s *ServiceStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
