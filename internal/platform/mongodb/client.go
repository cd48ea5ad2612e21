package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	ServicesCollection = "services"
	ReviewsCollection  = "reviews"
	UsersCollection    = "users"
)

// emailIndexName names the unique index backing user email uniqueness.
const emailIndexName = "email_unique"

// DB wraps a connected client and the application database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect dials the document store and verifies the connection with a ping.
// The returned DB must be closed with Disconnect.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetAppName("servicehub-api").
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", MapError(err))
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			logger.Warn("failed to disconnect after ping failure", "error", dErr)
		}
		return nil, fmt.Errorf("failed to ping document store: %w", MapError(err))
	}

	logger.Info("connected to document store", "database", cfg.Name)

	return &DB{
		client: client,
		db:     client.Database(cfg.Name),
		logger: logger.With(slog.String("component", "mongodb")),
	}, nil
}

// Ping checks that the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes all pooled connections.
func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the stores rely on. It is idempotent.
//
// The users email index is unique over string emails only, so profiles
// without an email do not collide with each other.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName(emailIndexName).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
	}

	name, err := d.db.Collection(UsersCollection).Indexes().CreateOne(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", MapError(err))
	}
	d.logger.Info("ensured index", "collection", UsersCollection, "index", name)
	return nil
}

// Services returns the service store.
func (d *DB) Services() *ServiceStore {
	return NewServiceStore(d.db.Collection(ServicesCollection), d.logger)
}

// Reviews returns the review store.
func (d *DB) Reviews() *ReviewStore {
	return NewReviewStore(d.db.Collection(ReviewsCollection), d.logger)
}

// Users returns the user store.
func (d *DB) Users() *UserStore {
	return NewUserStore(d.db.Collection(UsersCollection), d.logger)
}
