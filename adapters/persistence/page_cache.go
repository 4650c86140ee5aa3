package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/krypton/internal/domain/page"
)

type redisPageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPageCache(rdb *redis.Client, ttl time.Duration) page.Cache {
	return &redisPageCache{rdb: rdb, ttl: ttl}
}

func pageKey(username string) string {
	return "page:" + username
}

func (c *redisPageCache) Get(ctx context.Context, username string) (*page.Page, error) {
	data, err := c.rdb.Get(ctx, pageKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, page.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read page cache: %w", err)
	}

	p := &page.Page{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}
	return p, nil
}

func (c *redisPageCache) Set(ctx context.Context, p *page.Page) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal page for cache: %w", err)
	}

	if err := c.rdb.Set(ctx, pageKey(p.Username), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write page cache: %w", err)
	}
	return nil
}

func (c *redisPageCache) Invalidate(ctx context.Context, username string) error {
	if err := c.rdb.Del(ctx, pageKey(username)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate page cache: %w", err)
	}
	return nil
}
