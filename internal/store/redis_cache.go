package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/younesh11/url-shortner/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
// Writes go through to the underlying store first; the cache is
// populated on successful writes and on read misses.
type RedisCacheRepository struct {
	store   shortener.Repository
	client  *redis.Client
	prefix  string
	hashKey string
	ttl     time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:   store,
		client:  client,
		prefix:  "link:",
		hashKey: "link_hashes",
		ttl:     ttl,
	}
}

func (r *RedisCacheRepository) Save(ctx context.Context, link *shortener.Link) error {
	if err := r.store.Save(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) GetActiveByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		if link.Expired(time.Now().UTC()) {
			return nil, shortener.ErrNotFound
		}

		return link, nil
	}

	// Miss goes to the store, which applies DB-side expiry.
	link, err := r.store.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) GetByHash(ctx context.Context, hash shortener.URLHash) (*shortener.Link, error) {
	code, err := r.client.HGet(ctx, r.hashKey, string(hash)).Result()
	if err == nil {
		if link, err := r.getFromCache(ctx, shortener.Code(code)); err == nil {
			return link, nil
		}
	}

	link, err := r.store.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// IncrementClicks bypasses the cache: counters live in the store only.
func (r *RedisCacheRepository) IncrementClicks(ctx context.Context, code shortener.Code) error {
	return r.store.IncrementClicks(ctx, code)
}

func (r *RedisCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	// Cached entries for deleted links age out via TTL.
	return r.store.DeleteExpired(ctx)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	link := &shortener.Link{
		Code:      shortener.Code(result["code"]),
		TargetURL: result["target_url"],
		URLHash:   shortener.URLHash(result["url_hash"]),
	}

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			link.CreatedAt = time.Unix(0, nanos)
		}
	}

	if ts, ok := result["expires_at"]; ok && ts != "" {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			exp := time.Unix(0, nanos)
			link.ExpiresAt = &exp
		}
	}

	if v, ok := result["is_custom_alias"]; ok {
		link.CustomAlias = v == "1"
	}

	return link, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.Code)

	fields := map[string]interface{}{
		"code":       string(link.Code),
		"target_url": link.TargetURL,
		"url_hash":   string(link.URLHash),
		"created_at": link.CreatedAt.UnixNano(),
		"expires_at": "",
	}
	if link.ExpiresAt != nil {
		fields["expires_at"] = link.ExpiresAt.UnixNano()
	}

	if link.CustomAlias {
		fields["is_custom_alias"] = "1"
	} else {
		fields["is_custom_alias"] = "0"
	}

	pipe.HSet(ctx, key, fields)

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if link.URLHash != "" {
		pipe.HSet(ctx, r.hashKey, string(link.URLHash), string(link.Code))
	}

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
