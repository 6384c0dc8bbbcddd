package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/repository/implementation"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/lexical"
	"blog-publishing-be/pkg/mdimport"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeedSet struct {
	Authors []AuthorFixture `yaml:"authors"`
	Posts   []PostFixture   `yaml:"posts"`
}

type AuthorFixture struct {
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	Bio         string `yaml:"bio"`
}

type PostFixture struct {
	Author      string     `yaml:"author"`
	Slug        string     `yaml:"slug"`
	Title       string     `yaml:"title"`
	Status      string     `yaml:"status"`
	PublishedAt *time.Time `yaml:"published_at"`
	// Plain posts are stored as raw text instead of an editor document.
	Plain    bool   `yaml:"plain"`
	Markdown string `yaml:"markdown"`
}

// SeedAuthors inserts missing authors and returns ids keyed by email.
func SeedAuthors(ctx context.Context, db *gorm.DB, fixtures []AuthorFixture) map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID, len(fixtures))
	repo := implementation.NewAuthorRepository(db)

	for _, f := range fixtures {
		existing, err := repo.FindOne(ctx, specification.ByEmail{Email: f.Email})
		if err != nil {
			log.Printf("Error looking up author '%s': %v", f.Email, err)
			continue
		}
		if existing != nil {
			log.Printf("Author '%s' already exists, skipping...", f.Email)
			ids[f.Email] = existing.Id
			continue
		}

		author := &entity.Author{Email: f.Email, DisplayName: f.DisplayName, Bio: f.Bio}
		if err := repo.Create(ctx, author); err != nil {
			log.Printf("Error creating author '%s': %v", f.Email, err)
			continue
		}
		log.Printf("Created author: %s", f.Email)
		ids[f.Email] = author.Id
	}

	return ids
}

// SeedPosts creates posts through the post service so excerpts, reading
// times and slug rules match what the API produces.
func SeedPosts(ctx context.Context, db *gorm.DB, posts service.IPostService, authorIds map[string]uuid.UUID, fixtures []PostFixture) {
	for _, f := range fixtures {
		authorId, ok := authorIds[f.Author]
		if !ok {
			log.Printf("Post '%s' references unknown author '%s', skipping...", f.Slug, f.Author)
			continue
		}

		content, err := fixtureContent(f)
		if err != nil {
			log.Printf("Error preparing post '%s': %v", f.Slug, err)
			continue
		}

		res, err := posts.Create(ctx, authorId, &dto.CreatePostRequest{
			Title:   f.Title,
			Slug:    f.Slug,
			Content: content,
			Status:  f.Status,
		})
		if errors.Is(err, service.ErrSlugTaken) {
			log.Printf("Post '%s' already exists, skipping...", f.Slug)
			continue
		}
		if err != nil {
			log.Printf("Error creating post '%s': %v", f.Slug, err)
			continue
		}

		if f.PublishedAt != nil && f.Status == "published" {
			err := db.Model(&model.Post{}).Where("id = ?", res.Id).Update("published_at", *f.PublishedAt).Error
			if err != nil {
				log.Printf("Error backdating post '%s': %v", f.Slug, err)
			}
		}
		log.Printf("Created post: %s", f.Slug)
	}
}

func fixtureContent(f PostFixture) (json.RawMessage, error) {
	if f.Plain {
		return json.Marshal(f.Markdown)
	}

	serialized, err := lexical.Encode(mdimport.Import([]byte(f.Markdown)))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(serialized), nil
}
