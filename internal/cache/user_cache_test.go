package cache

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type countingUserRepo struct {
	users    map[primitive.ObjectID]domain.User
	getCalls int
}

func newCountingUserRepo() *countingUserRepo {
	return &countingUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *countingUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *countingUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.getCalls++
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *countingUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type cacheTestEnv struct {
	server  *miniredis.Miniredis
	backing *countingUserRepo
	repo    repository.UserRepository
	metrics *metrics.Metrics
}

func setupCacheTestEnv(t *testing.T) cacheTestEnv {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := newCountingUserRepo()
	m := metrics.NewNop()

	return cacheTestEnv{
		server:  server,
		backing: backing,
		repo:    NewCachedUserRepository(backing, client, time.Hour, zap.NewNop(), m),
		metrics: m,
	}
}

func TestCachedUserRepository_ReadThrough(t *testing.T) {
	env := setupCacheTestEnv(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	env.backing.users[id] = domain.User{ID: id, Username: "alice"}

	first, err := env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, 1, env.backing.getCalls)
	assert.True(t, env.server.Exists(cacheKey(id)))

	second, err := env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, env.backing.getCalls, "second lookup should be served from Redis")

	lookups := env.metrics.UserCacheLookupsTotal
	assert.Equal(t, float64(1), testutil.ToFloat64(lookups.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(lookups.WithLabelValues("hit")))
}

func TestCachedUserRepository_CreatePrimesCache(t *testing.T) {
	env := setupCacheTestEnv(t)
	ctx := context.Background()

	user := &domain.User{Username: "bob"}
	id, err := env.repo.Create(ctx, user)
	require.NoError(t, err)

	found, err := env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Username)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, 0, env.backing.getCalls)
	assert.Equal(t, time.Hour, env.server.TTL(cacheKey(id)))
}

func TestCachedUserRepository_NotFoundIsNotCached(t *testing.T) {
	env := setupCacheTestEnv(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	_, err := env.repo.GetByID(ctx, id)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.False(t, env.server.Exists(cacheKey(id)))
}

func TestCachedUserRepository_RedisDownFallsThrough(t *testing.T) {
	env := setupCacheTestEnv(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	env.backing.users[id] = domain.User{ID: id, Username: "carol"}
	env.server.Close()

	user, err := env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.UserCacheLookupsTotal.WithLabelValues("error")))
}

func TestCachedUserRepository_CorruptEntryIsReplaced(t *testing.T) {
	env := setupCacheTestEnv(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	env.backing.users[id] = domain.User{ID: id, Username: "dave"}
	require.NoError(t, env.server.Set(cacheKey(id), "not bson"))

	user, err := env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)
	assert.Equal(t, 1, env.backing.getCalls)

	_, err = env.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, env.backing.getCalls)
}
