package contract

import (
	"context"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/specification"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *entity.Author) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Author, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Author, error)
}
