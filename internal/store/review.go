package store

import (
	"context"

	"github.com/phrazzld/servicehub-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
//
// Reviews carry two identifiers: the store-assigned _id, used by Update, and
// the caller-supplied business id naming the reviewed service, used by
// ListByServiceID and DeleteOwned. The store does not check that the service
// exists.
type ReviewStore interface {
	// Create inserts a new review document.
	Create(ctx context.Context, doc domain.Document) (*InsertResult, error)

	// List returns every review.
	List(ctx context.Context) ([]domain.Document, error)

	// ListByServiceID returns the reviews whose business id equals serviceID.
	ListByServiceID(ctx context.Context, serviceID string) ([]domain.Document, error)

	// ListByEmail returns the reviews owned by email.
	ListByEmail(ctx context.Context, email string) ([]domain.Document, error)

	// Update merges fields into the review with the given store identifier.
	Update(ctx context.Context, id string, fields domain.Document) (*UpdateResult, error)

	// DeleteOwned removes one review matching both the owner email and the
	// business id.
	DeleteOwned(ctx context.Context, email, serviceID string) (*DeleteResult, error)

	// Count returns the number of reviews.
	Count(ctx context.Context) (int64, error)
}
