package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microsvc/internal/domain"
	"microsvc/internal/repository"
)

const testPrefix = "test:"

func newRedisRepo(t *testing.T) (*repository.RedisLinkRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.NewRedisLinkRepository(client, testPrefix), mr
}

func TestRedisLinkRepository_SaveAndFind(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	createdAt := time.Date(2024, 1, 15, 12, 0, 0, 500, time.UTC)
	link := &domain.ShortLink{Code: "aB3xY9", URL: "https://example.com/page", CreatedAt: createdAt}

	require.NoError(t, repo.SaveIfNotExists(ctx, link))
	assert.True(t, mr.Exists(testPrefix+"link:aB3xY9"))
	assert.Equal(t, "https://example.com/page", mr.HGet(testPrefix+"link:aB3xY9", "url"))

	found, err := repo.FindByShortCode(ctx, "aB3xY9")
	require.NoError(t, err)
	assert.Equal(t, "aB3xY9", found.Code)
	assert.Equal(t, link.URL, found.URL)
	assert.True(t, createdAt.Equal(found.CreatedAt), "created_at round-trips with nanoseconds")
	assert.Equal(t, int64(0), found.Clicks)
}

func TestRedisLinkRepository_SaveIfNotExists_Duplicate(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	first := &domain.ShortLink{Code: "aB3xY9", URL: "https://first.example.com", CreatedAt: time.Now()}
	second := &domain.ShortLink{Code: "aB3xY9", URL: "https://second.example.com", CreatedAt: time.Now()}

	require.NoError(t, repo.SaveIfNotExists(ctx, first))
	err := repo.SaveIfNotExists(ctx, second)
	assert.ErrorIs(t, err, domain.ErrCodeExists)

	assert.Equal(t, "https://first.example.com", mr.HGet(testPrefix+"link:aB3xY9", "url"), "original is kept")
}

func TestRedisLinkRepository_FindByShortCode_NotFound(t *testing.T) {
	repo, _ := newRedisRepo(t)

	_, err := repo.FindByShortCode(context.Background(), "nope00")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisLinkRepository_IncrementClickCount(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveIfNotExists(ctx, &domain.ShortLink{Code: "aB3xY9", URL: "https://example.com", CreatedAt: time.Now()}))

	for want := int64(1); want <= 3; want++ {
		clicks, err := repo.IncrementClickCount(ctx, "aB3xY9")
		require.NoError(t, err)
		assert.Equal(t, want, clicks)
	}
	assert.Equal(t, "3", mr.HGet(testPrefix+"link:aB3xY9", "clicks"))

	found, err := repo.FindByShortCode(ctx, "aB3xY9")
	require.NoError(t, err)
	assert.Equal(t, int64(3), found.Clicks)
}

func TestRedisLinkRepository_IncrementClickCount_AbsentCreatesNothing(t *testing.T) {
	repo, mr := newRedisRepo(t)

	_, err := repo.IncrementClickCount(context.Background(), "ghost1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.False(t, mr.Exists(testPrefix+"link:ghost1"))
	assert.Empty(t, mr.Keys())
}

func TestRedisLinkRepository_ConcurrentIncrements(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveIfNotExists(ctx, &domain.ShortLink{Code: "aB3xY9", URL: "https://example.com", CreatedAt: time.Now()}))

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClickCount(ctx, "aB3xY9")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := repo.FindByShortCode(ctx, "aB3xY9")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), found.Clicks)
}

func TestRedisLinkRepository_StorageErrorIsNotCollision(t *testing.T) {
	repo, mr := newRedisRepo(t)
	mr.Close()

	err := repo.SaveIfNotExists(context.Background(), &domain.ShortLink{Code: "aB3xY9", URL: "https://example.com", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCodeExists)
}
