package dto

import (
	"encoding/json"
	"time"

	"blog-publishing-be/pkg/lexical"

	"github.com/google/uuid"
)

// CreatePostRequest carries the editor output. Content is either the editor
// state as a JSON object, a JSON string holding a serialized document, or a
// JSON string of plain text.
type CreatePostRequest struct {
	Title   string          `json:"title" validate:"required,max=255"`
	Slug    string          `json:"slug" validate:"required,slug,max=255"`
	Content json.RawMessage `json:"content" validate:"required"`
	Status  string          `json:"status" validate:"omitempty,oneof=draft published"`
}

type CreatePostResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type UpdatePostRequest struct {
	Id      uuid.UUID       `json:"-"`
	Title   string          `json:"title" validate:"required,max=255"`
	Slug    string          `json:"slug" validate:"required,slug,max=255"`
	Content json.RawMessage `json:"content" validate:"required"`
	Status  string          `json:"status" validate:"omitempty,oneof=draft published"`
}

type UpdatePostResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type ListPostsRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

type AuthorSummary struct {
	Id          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

type PostListItem struct {
	Id          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Excerpt     string         `json:"excerpt"`
	ReadingTime int            `json:"reading_time"`
	Author      *AuthorSummary `json:"author,omitempty"`
	PublishedAt *time.Time     `json:"published_at"`
}

type PostListResponse struct {
	Items []*PostListItem `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

// RenderedContent is the display projection of a post body. It is what the
// render cache stores.
type RenderedContent struct {
	Mode   lexical.Mode           `json:"mode"`
	Blocks []lexical.DisplayBlock `json:"blocks"`
	HTML   string                 `json:"html"`
}

type ShowPostResponse struct {
	Id          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Excerpt     string           `json:"excerpt"`
	ReadingTime int              `json:"reading_time"`
	Author      *AuthorSummary   `json:"author,omitempty"`
	Content     *RenderedContent `json:"content"`
	PublishedAt *time.Time       `json:"published_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

// PostSourceResponse is the owner view: the stored string as-is plus a preview.
type PostSourceResponse struct {
	Id          uuid.UUID        `json:"id"`
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Status      string           `json:"status"`
	Source      string           `json:"source"`
	Preview     *RenderedContent `json:"preview"`
	PublishedAt *time.Time       `json:"published_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

type PublishRenderPostMessage struct {
	PostId uuid.UUID `json:"post_id"`
}
