package specification

import (
	"blog-publishing-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByStatus struct {
	Status entity.PostStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// Published is what readers may see
func Published() Specification {
	return ByStatus{Status: entity.PostStatusPublished}
}

type PostOwnedBy struct {
	AuthorID uuid.UUID
}

func (s PostOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("posts.author_id = ?", s.AuthorID)
}
