package contract

import (
	"context"

	"blog-publishing-be/internal/dto"
)

// RenderCache holds rendered post content keyed by post revision.
// Misses and backend failures look the same to callers.
type RenderCache interface {
	Get(ctx context.Context, key string) (*dto.RenderedContent, bool)
	Set(ctx context.Context, key string, content *dto.RenderedContent)
}
