// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/implementation"
	"blog-publishing-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewInMemoryDB(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedAuthor inserts an author and returns it.
func SeedAuthor(t *testing.T, db *gorm.DB, email string) *entity.Author {
	t.Helper()

	author := &entity.Author{Email: email, DisplayName: email}
	require.NoError(t, implementation.NewAuthorRepository(db).Create(t.Context(), author))
	return author
}
