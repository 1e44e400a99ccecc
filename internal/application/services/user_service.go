package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
)

const (
	// UsersListingKey is the single cache entry holding the full user listing.
	UsersListingKey   = "users:all"
	usersListingLabel = "users_list"
)

type UserService struct {
	repo    ports.UserRepository
	listing *ListingCache[*user.User]
	logger  *logrus.Logger
	metrics ports.OperationMetrics
}

func NewUserService(repo ports.UserRepository, cache ports.Cache, listingTTL time.Duration, logger *logrus.Logger, metrics ports.OperationMetrics) ports.UserService {
	listing := NewListingCache(cache, ListingCacheConfig{
		Key:       UsersListingKey,
		CacheType: usersListingLabel,
		TTL:       listingTTL,
	}, repo.ListAll, logger, metrics)
	return &UserService{
		repo:    repo,
		listing: listing,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, bool, error) {
	users, cached, err := s.listing.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	s.observe("list")
	return users, cached, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.observe("get")
	return u, nil
}

// CreateUser stores req as given. Callers normalize and validate it first.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx, "create", created.ID)
	s.observe("create")
	return created, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (*user.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx, "delete", id)
	s.observe("delete")
	return deleted, nil
}

// invalidateListing runs after the store write has committed. A failure leaves
// a stale entry that expires with its TTL, so the request still succeeds.
func (s *UserService) invalidateListing(ctx context.Context, op string, userID int64) {
	if err := s.listing.Invalidate(ctx); err != nil {
		if s.metrics != nil {
			s.metrics.CacheInvalidationFailed(usersListingLabel)
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"operation": op, "user_id": userID}).WithError(err).Error("cache: listing invalidation failed; entry will expire with its TTL")
		}
		return
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"operation": op, "user_id": userID}).Info("cache: users listing invalidated")
	}
}

func (s *UserService) observe(op string) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(op)
	}
}
