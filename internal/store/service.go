package store

import (
	"context"

	"github.com/phrazzld/servicehub-api/internal/domain"
)

// ServiceStore defines the interface for service listing persistence.
type ServiceStore interface {
	// Create inserts a new service document. The store assigns the identifier.
	Create(ctx context.Context, doc domain.Document) (*InsertResult, error)

	// List returns services in natural order, capped at limit.
	// A limit of zero means no cap.
	List(ctx context.Context, limit int64) ([]domain.Document, error)

	// GetByID retrieves a service by its store identifier.
	// Returns ErrServiceNotFound if it does not exist and ErrInvalidID if the
	// identifier is malformed.
	GetByID(ctx context.Context, id string) (domain.Document, error)

	// ListByCreator returns the services whose serviceCreator equals email.
	ListByCreator(ctx context.Context, email string) ([]domain.Document, error)

	// Update merges fields into the service with the given identifier.
	// The identifier field itself is never overwritten.
	Update(ctx context.Context, id string, fields domain.Document) (*UpdateResult, error)

	// Delete removes the service with the given identifier. Reviews that
	// reference it are left in place.
	Delete(ctx context.Context, id string) (*DeleteResult, error)

	// Count returns the number of services.
	Count(ctx context.Context) (int64, error)
}
