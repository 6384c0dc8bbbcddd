package mapper

import (
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"

	"gorm.io/gorm"
)

type AuthorMapper struct{}

func NewAuthorMapper() *AuthorMapper {
	return &AuthorMapper{}
}

func (m *AuthorMapper) ToEntity(a *model.Author) *entity.Author {
	if a == nil {
		return nil
	}

	var deletedAt *time.Time
	if a.DeletedAt.Valid {
		t := a.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Author{
		Id:          a.Id,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Bio:         a.Bio,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   a.DeletedAt.Valid,
	}
}

func (m *AuthorMapper) ToModel(a *entity.Author) *model.Author {
	if a == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if a.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *a.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Author{
		Id:          a.Id,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Bio:         a.Bio,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *AuthorMapper) ToEntities(authors []*model.Author) []*entity.Author {
	entities := make([]*entity.Author, len(authors))
	for i, a := range authors {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
