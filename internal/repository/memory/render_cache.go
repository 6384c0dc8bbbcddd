package memory

import (
	"context"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type RenderCache struct {
	cache *cache.Cache
}

// NewRenderCache keeps entries for ttl and purges expired ones every ttl/6.
func NewRenderCache(ttl time.Duration) contract.RenderCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RenderCache{
		cache: cache.New(ttl, ttl/6),
	}
}

func (r *RenderCache) Get(_ context.Context, key string) (*dto.RenderedContent, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*dto.RenderedContent), true
	}
	return nil, false
}

func (r *RenderCache) Set(_ context.Context, key string, content *dto.RenderedContent) {
	r.cache.Set(key, content, cache.DefaultExpiration)
}
