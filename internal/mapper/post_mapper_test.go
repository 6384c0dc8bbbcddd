package mapper

import (
	"testing"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPostMapperToEntity(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := &model.Post{
		Id:          uuid.New(),
		Slug:        "hello",
		Status:      "published",
		ReadingTime: 2,
		PublishedAt: &now,
		CreatedAt:   now,
		DeletedAt:   gorm.DeletedAt{Time: now, Valid: true},
	}

	e := NewPostMapper().ToEntity(m)

	assert.Equal(t, m.Id, e.Id)
	assert.Equal(t, entity.PostStatusPublished, e.Status)
	assert.True(t, e.IsPublished())
	assert.Nil(t, e.UpdatedAt)
	assert.True(t, e.IsDeleted)
	assert.Equal(t, now, *e.DeletedAt)
	assert.Equal(t, now.UnixNano(), e.Revision())
}

func TestPostMapperToModel(t *testing.T) {
	updated := time.Now()
	e := &entity.Post{Id: uuid.New(), Status: entity.PostStatusDraft, UpdatedAt: &updated, IsDeleted: true}

	m := NewPostMapper().ToModel(e)

	assert.Equal(t, "draft", m.Status)
	assert.Equal(t, updated, m.UpdatedAt)
	assert.True(t, m.DeletedAt.Valid)
	assert.Nil(t, NewPostMapper().ToModel(nil))
}
