package entity

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	Id          uuid.UUID
	Slug        string
	Title       string
	Content     string // serialized document, or legacy plain text
	Status      PostStatus
	Excerpt     string
	ReadingTime int // minutes
	AuthorId    uuid.UUID
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Revision identifies one stored version of the content.
func (p *Post) Revision() int64 {
	if p.UpdatedAt != nil {
		return p.UpdatedAt.UnixNano()
	}
	return p.CreatedAt.UnixNano()
}
