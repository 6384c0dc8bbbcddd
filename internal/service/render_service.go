package service

import (
	"context"
	"fmt"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/pkg/lexical"
)

type IRenderService interface {
	// Render projects a stored post body, going through the cache.
	Render(ctx context.Context, post *entity.Post) *dto.RenderedContent
	// RenderSource projects an arbitrary stored string without caching.
	RenderSource(source string) *dto.RenderedContent
	Markdown(post *entity.Post) (string, error)
}

type renderService struct {
	cache   contract.RenderCache
	metrics *metrics.Metrics
	logger  logger.ILogger
}

func NewRenderService(cache contract.RenderCache, m *metrics.Metrics, log logger.ILogger) IRenderService {
	return &renderService{
		cache:   cache,
		metrics: m,
		logger:  log,
	}
}

func renderCacheKey(post *entity.Post) string {
	return fmt.Sprintf("%s:%d", post.Id, post.Revision())
}

func (s *renderService) Render(ctx context.Context, post *entity.Post) *dto.RenderedContent {
	key := renderCacheKey(post)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.metrics.CacheHit()
			return cached
		}
		s.metrics.CacheMiss()
	}

	content := s.RenderSource(post.Content)
	if content.Mode == lexical.ModePlainText {
		s.logger.Info("RenderService", "Post body rendered as plain text", map[string]interface{}{
			"post_id": post.Id.String(),
			"slug":    post.Slug,
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, content)
	}
	return content
}

func (s *renderService) RenderSource(source string) *dto.RenderedContent {
	out := lexical.Render(source)
	blocks := out.Collect()
	if blocks == nil {
		blocks = []lexical.DisplayBlock{}
	}

	s.metrics.Renders.WithLabelValues(string(out.Mode)).Inc()

	return &dto.RenderedContent{
		Mode:   out.Mode,
		Blocks: blocks,
		HTML:   lexical.HTML(out.Blocks()),
	}
}

func (s *renderService) Markdown(post *entity.Post) (string, error) {
	body, err := lexical.Markdown(lexical.DecodeAndRender(post.Content))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# %s\n\n%s", lexical.EscapeMarkdown(post.Title), body), nil
}
