package main

import (
	"context"
	"testing"

	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/internal/testutil"
	"blog-publishing-be/pkg/lexical"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedFixturesSeedTwice(t *testing.T) {
	var set SeedSet
	require.NoError(t, yaml.Unmarshal(fixtures, &set))
	require.NotEmpty(t, set.Authors)
	require.NotEmpty(t, set.Posts)

	db := testutil.NewDB(t)
	m := metrics.New()
	log := logger.NewNopLogger()
	posts := service.NewPostService(
		unitofwork.NewRepositoryFactory(db),
		service.NewRenderService(memory.NewRenderCache(0), m, log),
		nil, nil, m, log,
	)

	for range 2 {
		ids := SeedAuthors(context.Background(), db, set.Authors)
		assert.Len(t, ids, len(set.Authors))
		SeedPosts(context.Background(), db, posts, ids, set.Posts)
	}

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Equal(t, int64(len(set.Posts)), count)

	var archived model.Post
	require.NoError(t, db.Where("slug = ?", "notes-from-the-archive").First(&archived).Error)
	assert.Equal(t, lexical.ModePlainText, lexical.Render(archived.Content).Mode)
	require.NotNil(t, archived.PublishedAt)
	assert.Equal(t, 2023, archived.PublishedAt.Year())

	var designed model.Post
	require.NoError(t, db.Where("slug = ?", "evolution-user-centered-design").First(&designed).Error)
	assert.Equal(t, lexical.ModeRichText, lexical.Render(designed.Content).Mode)
	assert.Greater(t, designed.ReadingTime, 0)
	assert.NotEmpty(t, designed.Excerpt)
}
