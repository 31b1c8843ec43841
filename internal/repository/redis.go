package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"microsvc/internal/domain"
)

// Each link is stored as a hash with url, created_at and clicks fields.
var (
	saveIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return 0
end
redis.call('HSET', KEYS[1], 'url', ARGV[1], 'created_at', ARGV[2], 'clicks', ARGV[3])
return 1
`)

	incrementIfPresentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
return redis.call('HINCRBY', KEYS[1], 'clicks', 1)
`)
)

// RedisLinkRepository stores links in Redis so several shortener
// processes can share them and they survive restarts.
type RedisLinkRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisLinkRepository creates a repository using the given client.
// Keys are namespaced as "<prefix>link:<code>".
func NewRedisLinkRepository(client redis.UniversalClient, prefix string) *RedisLinkRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisLinkRepository")
	}
	return &RedisLinkRepository{client: client, prefix: prefix}
}

func (r *RedisLinkRepository) key(code string) string {
	return r.prefix + "link:" + code
}

// SaveIfNotExists writes the link in a single script call so a
// concurrent writer can never observe or overwrite a half-written hash.
func (r *RedisLinkRepository) SaveIfNotExists(ctx context.Context, link *domain.ShortLink) error {
	saved, err := saveIfAbsentScript.Run(ctx, r.client,
		[]string{r.key(link.Code)},
		link.URL,
		link.CreatedAt.UTC().Format(time.RFC3339Nano),
		link.Clicks,
	).Int64()
	if err != nil {
		return fmt.Errorf("redis: save link %q: %w", link.Code, err)
	}
	if saved == 0 {
		return domain.ErrCodeExists
	}
	return nil
}

// FindByShortCode retrieves a link by its code.
func (r *RedisLinkRepository) FindByShortCode(ctx context.Context, code string) (*domain.ShortLink, error) {
	fields, err := r.client.HGetAll(ctx, r.key(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: find link %q: %w", code, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}
	return decodeLink(code, fields)
}

// IncrementClickCount atomically increments the click counter.
func (r *RedisLinkRepository) IncrementClickCount(ctx context.Context, code string) (int64, error) {
	clicks, err := incrementIfPresentScript.Run(ctx, r.client, []string{r.key(code)}).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis: increment clicks %q: %w", code, err)
	}
	if clicks < 0 {
		return 0, domain.ErrNotFound
	}
	return clicks, nil
}

func decodeLink(code string, fields map[string]string) (*domain.ShortLink, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("redis: link %q has bad created_at: %w", code, err)
	}
	clicks, err := strconv.ParseInt(fields["clicks"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("redis: link %q has bad clicks: %w", code, err)
	}
	return &domain.ShortLink{
		Code:      code,
		URL:       fields["url"],
		CreatedAt: createdAt,
		Clicks:    clicks,
	}, nil
}

var _ LinkRepository = (*RedisLinkRepository)(nil)
