// Package cache keeps user lookups out of MongoDB on the hot path.
package cache

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const keyPrefix = "user:"

// cachedUserRepository decorates a UserRepository with a Redis read-through
// cache for GetByID. Users are immutable, so entries are only evicted by TTL.
// List always goes to the underlying repository.
type cachedUserRepository struct {
	next    repository.UserRepository
	client  redis.Cmdable
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewCachedUserRepository wraps next. Redis failures are logged and the
// lookup falls through to next; they never fail the request.
func NewCachedUserRepository(next repository.UserRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) repository.UserRepository {
	return &cachedUserRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

func cacheKey(id primitive.ObjectID) string {
	return keyPrefix + id.Hex()
}

// Create persists through next and then primes the cache.
func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	id, err := r.next.Create(ctx, user)
	if err != nil {
		return id, err
	}
	user.ID = id
	r.store(ctx, user)
	return id, nil
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	raw, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var user domain.User
		decodeErr := bson.Unmarshal(raw, &user)
		if decodeErr == nil {
			r.metrics.UserCacheLookupsTotal.WithLabelValues("hit").Inc()
			return &user, nil
		}
		r.logger.Warn("Discarding undecodable cached user", zap.String("user_id", id.Hex()), zap.Error(decodeErr))
		r.metrics.UserCacheLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		r.metrics.UserCacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		r.logger.Warn("User cache read failed", zap.String("user_id", id.Hex()), zap.Error(err))
		r.metrics.UserCacheLookupsTotal.WithLabelValues("error").Inc()
	}

	user, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.next.List(ctx)
}

func (r *cachedUserRepository) store(ctx context.Context, user *domain.User) {
	raw, err := bson.Marshal(user)
	if err != nil {
		r.logger.Warn("Failed to encode user for cache", zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, cacheKey(user.ID), raw, r.ttl).Err(); err != nil {
		r.logger.Warn("User cache write failed", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
}

// NewClient opens a Redis client and verifies it with a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// PingFunc returns a health check for client.
func PingFunc(client redis.Cmdable) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
