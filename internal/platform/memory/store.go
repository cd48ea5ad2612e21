package memory

import (
	"context"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// DB holds the three marketplace collections.
type DB struct {
	services collection
	reviews  collection
	users    collection
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{}
}

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Services returns the service collection as a store.ServiceStore.
func (db *DB) Services() *ServiceStore { return &ServiceStore{c: &db.services} }

// Reviews returns the review collection as a store.ReviewStore.
func (db *DB) Reviews() *ReviewStore { return &ReviewStore{c: &db.reviews} }

// Users returns the user collection as a store.UserStore.
func (db *DB) Users() *UserStore { return &UserStore{c: &db.users} }

// ServiceStore implements store.ServiceStore in memory.
type ServiceStore struct {
	c *collection
}

var _ store.ServiceStore = (*ServiceStore)(nil)

// Create implements store.ServiceStore.Create.
func (s *ServiceStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.c.insert(doc, nil)
	if err != nil {
		return nil, store.NewStoreError("service", "insert", "insert failed", err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// List implements store.ServiceStore.List.
func (s *ServiceStore) List(ctx context.Context, limit int64) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.find(nil, limit), nil
}

// GetByID implements store.ServiceStore.GetByID.
func (s *ServiceStore) GetByID(ctx context.Context, id string) (domain.Document, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs := s.c.find(domain.Document{domain.FieldID: id}, 1)
	if len(docs) == 0 {
		return nil, store.ErrServiceNotFound
	}
	return docs[0], nil
}

// ListByCreator implements store.ServiceStore.ListByCreator.
func (s *ServiceStore) ListByCreator(ctx context.Context, email string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.find(domain.Document{domain.FieldServiceCreator: email}, 0), nil
}

// Update implements store.ServiceStore.Update.
func (s *ServiceStore) Update(ctx context.Context, id string, fields domain.Document) (*store.UpdateResult, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.updateOne(domain.Document{domain.FieldID: id}, fields), nil
}

// Delete implements store.ServiceStore.Delete.
func (s *ServiceStore) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.deleteOne(domain.Document{domain.FieldID: id}), nil
}

// Count implements store.ServiceStore.Count.
func (s *ServiceStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.c.count(), nil
}

// ReviewStore implements store.ReviewStore in memory.
type ReviewStore struct {
	c *collection
}

var _ store.ReviewStore = (*ReviewStore)(nil)

// Create implements store.ReviewStore.Create.
func (s *ReviewStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := s.c.insert(doc, nil)
	if err != nil {
		return nil, store.NewStoreError("review", "insert", "insert failed", err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// List implements store.ReviewStore.List.
func (s *ReviewStore) List(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.find(nil, 0), nil
}

// ListByServiceID implements store.ReviewStore.ListByServiceID.
func (s *ReviewStore) ListByServiceID(ctx context.Context, serviceID string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.find(domain.Document{domain.FieldReviewServiceID: serviceID}, 0), nil
}

// ListByEmail implements store.ReviewStore.ListByEmail.
func (s *ReviewStore) ListByEmail(ctx context.Context, email string) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.find(domain.Document{domain.FieldEmail: email}, 0), nil
}

// Update implements store.ReviewStore.Update.
func (s *ReviewStore) Update(ctx context.Context, id string, fields domain.Document) (*store.UpdateResult, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.updateOne(domain.Document{domain.FieldID: id}, fields), nil
}

// DeleteOwned implements store.ReviewStore.DeleteOwned.
func (s *ReviewStore) DeleteOwned(ctx context.Context, email, serviceID string) (*store.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.c.deleteOne(domain.Document{
		domain.FieldEmail:           email,
		domain.FieldReviewServiceID: serviceID,
	}), nil
}

// Count implements store.ReviewStore.Count.
func (s *ReviewStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.c.count(), nil
}

// UserStore implements store.UserStore in memory.
type UserStore struct {
	c *collection
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create. The email check runs under the
// collection's write lock, so concurrent inserts of one email cannot both win.
func (s *UserStore) Create(ctx context.Context, doc domain.Document) (*store.InsertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email, hasEmail := doc.StringField(domain.FieldEmail)
	id, err := s.c.insert(doc, func(existing []domain.Document) error {
		if !hasEmail {
			return nil
		}
		for _, u := range existing {
			if other, ok := u.StringField(domain.FieldEmail); ok && other == email {
				return store.ErrEmailExists
			}
		}
		return nil
	})
	if err != nil {
		return nil, store.NewStoreError("user", "insert", "insert failed", err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Count implements store.UserStore.Count.
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.c.count(), nil
}
