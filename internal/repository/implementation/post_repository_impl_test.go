package implementation_test

import (
	"testing"
	"time"

	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/repository/implementation"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.SeedAuthor(t, db, "ada@example.com")
	repo := implementation.NewPostRepository(db)
	ctx := t.Context()

	post := &entity.Post{
		Slug:        "first-post",
		Title:       "First",
		Content:     "legacy text",
		Status:      entity.PostStatusDraft,
		ReadingTime: 1,
		AuthorId:    author.Id,
	}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotEqual(t, uuid.Nil, post.Id)
	require.NotNil(t, post.UpdatedAt)

	found, err := repo.FindOne(ctx, specification.BySlug{Slug: "first-post"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.Id, found.Id)
	assert.Equal(t, "legacy text", found.Content)

	now := time.Now()
	found.Status = entity.PostStatusPublished
	found.PublishedAt = &now
	require.NoError(t, repo.Update(ctx, found))

	published, err := repo.Count(ctx, specification.Published())
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)

	require.NoError(t, repo.Delete(ctx, post.Id))

	gone, err := repo.FindOne(ctx, specification.ByID{ID: post.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	deleted, err := repo.FindOne(ctx, specification.ByID{ID: post.Id}, specification.IncludeDeleted{})
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.IsDeleted)
}

func TestPostRepositoryFindAllOrdersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	ada := testutil.SeedAuthor(t, db, "ada@example.com")
	bob := testutil.SeedAuthor(t, db, "bob@example.com")
	repo := implementation.NewPostRepository(db)
	ctx := t.Context()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"a", "b", "c"} {
		published := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, &entity.Post{
			Slug:        slug,
			Title:       slug,
			Status:      entity.PostStatusPublished,
			ReadingTime: 1,
			AuthorId:    ada.Id,
			PublishedAt: &published,
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Post{
		Slug: "bobs-draft", Title: "draft", Status: entity.PostStatusDraft, ReadingTime: 1, AuthorId: bob.Id,
	}))

	page, err := repo.FindAll(ctx,
		specification.Published(),
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: 2, Offset: 0},
	)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Slug)
	assert.Equal(t, "b", page[1].Slug)

	owned, err := repo.FindAll(ctx, specification.PostOwnedBy{AuthorID: bob.Id})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "bobs-draft", owned[0].Slug)
}

func TestPostRepositorySlugIsUnique(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.SeedAuthor(t, db, "ada@example.com")
	repo := implementation.NewPostRepository(db)

	require.NoError(t, repo.Create(t.Context(), &entity.Post{Slug: "dup", Title: "x", Status: entity.PostStatusDraft, ReadingTime: 1, AuthorId: author.Id}))
	err := repo.Create(t.Context(), &entity.Post{Slug: "dup", Title: "y", Status: entity.PostStatusDraft, ReadingTime: 1, AuthorId: author.Id})
	assert.Error(t, err)
}

func TestAuthorRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ada := testutil.SeedAuthor(t, db, "ada@example.com")
	repo := implementation.NewAuthorRepository(db)

	found, err := repo.FindOne(t.Context(), specification.Filter("email", "ada@example.com"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ada.Id, found.Id)

	missing, err := repo.FindOne(t.Context(), specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(t.Context(), specification.ByIDs{IDs: []uuid.UUID{ada.Id}})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
