package rediscache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blog:render:"

type RenderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRenderCache(rdb *redis.Client, ttl time.Duration) contract.RenderCache {
	return &RenderCache{rdb: rdb, ttl: ttl}
}

// NewClient parses a redis:// URL, falling back to a plain address.
func NewClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	return redis.NewClient(opt)
}

func (r *RenderCache) Get(ctx context.Context, key string) (*dto.RenderedContent, bool) {
	raw, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] render cache get %s: %v", key, err)
		}
		return nil, false
	}

	var content dto.RenderedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, false
	}
	return &content, true
}

func (r *RenderCache) Set(ctx context.Context, key string, content *dto.RenderedContent) {
	raw, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		log.Printf("[WARN] render cache set %s: %v", key, err)
	}
}
