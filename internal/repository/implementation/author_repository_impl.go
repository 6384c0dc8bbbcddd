package implementation

import (
	"context"
	"errors"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/mapper"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuthorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuthorMapper
}

func NewAuthorRepository(db *gorm.DB) contract.AuthorRepository {
	return &AuthorRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuthorMapper(),
	}
}

func (r *AuthorRepositoryImpl) Create(ctx context.Context, author *entity.Author) error {
	m := r.mapper.ToModel(author)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*author = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuthorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Author, error) {
	var m model.Author
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AuthorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Author, error) {
	var models []*model.Author
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
