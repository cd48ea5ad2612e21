package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Counts is the body of GET /countData.
type Counts struct {
	ServiceCount int64 `json:"serviceCount"`
	ReviewCount  int64 `json:"reviewCount"`
	UserCount    int64 `json:"userCount"`
}

// Counter is the subset of a store needed to report its size.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsService reports aggregate collection sizes.
type StatsService interface {
	// CountData returns the number of services, reviews and users.
	// The three counts are taken independently and are not a consistent
	// snapshot.
	CountData(ctx context.Context) (*Counts, error)
}

type statsServiceImpl struct {
	services Counter
	reviews  Counter
	users    Counter
	logger   *slog.Logger
}

var _ StatsService = (*statsServiceImpl)(nil)

// NewStatsService creates a StatsService over the three marketplace stores.
func NewStatsService(
	services store.ServiceStore,
	reviews store.ReviewStore,
	users store.UserStore,
	logger *slog.Logger,
) StatsService {
	return newStatsService(services, reviews, users, logger)
}

func newStatsService(services, reviews, users Counter, logger *slog.Logger) *statsServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &statsServiceImpl{
		services: services,
		reviews:  reviews,
		users:    users,
		logger:   logger.With("component", "stats_service"),
	}
}

// CountData implements StatsService.CountData.
func (s *statsServiceImpl) CountData(ctx context.Context) (*Counts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var counts Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.services.Count(gctx)
		if err != nil {
			return NewStatsServiceError("count", "services", err)
		}
		counts.ServiceCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.reviews.Count(gctx)
		if err != nil {
			return NewStatsServiceError("count", "reviews", err)
		}
		counts.ReviewCount = n
		return nil
	})
	g.Go(func() error {
		n, err := s.users.Count(gctx)
		if err != nil {
			return NewStatsServiceError("count", "users", err)
		}
		counts.UserCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to count collections", "error", err)
		return nil, err
	}

	log.Debug("counted collections",
		"services", counts.ServiceCount,
		"reviews", counts.ReviewCount,
		"users", counts.UserCount)
	return &counts, nil
}
