package unitofwork

import (
	"context"

	"blog-publishing-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AuthorRepository() contract.AuthorRepository
	PostRepository() contract.PostRepository
}
