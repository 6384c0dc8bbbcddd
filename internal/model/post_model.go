package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post stores the editor output as one serialized document string. Rows
// written before the rich editor existed hold plain text in Content.
type Post struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Content     string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:varchar(20);not null;default:draft;index"`
	Excerpt     string         `gorm:"type:text"`
	ReadingTime int            `gorm:"not null;default:1"`
	AuthorId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	PublishedAt *time.Time     `gorm:"index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns the id in Go so sqlite and postgres behave the same.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}
