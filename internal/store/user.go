package store

import (
	"context"

	"github.com/phrazzld/servicehub-api/internal/domain"
)

// UserStore defines the interface for user profile persistence.
type UserStore interface {
	// Create inserts a new user document.
	// Returns ErrEmailExists if another user already has the same email.
	// Uniqueness is enforced atomically by the store, not by a prior lookup.
	Create(ctx context.Context, doc domain.Document) (*InsertResult, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
