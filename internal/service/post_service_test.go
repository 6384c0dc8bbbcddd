package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/testutil"
	"blog-publishing-be/pkg/events"
	"blog-publishing-be/pkg/lexical"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (r *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

type fixture struct {
	svc       IPostService
	render    IRenderService
	db        *gorm.DB
	author    *entity.Author
	events    *recordingEvents
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	cache     contract.RenderCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	f := &fixture{
		db:        db,
		author:    testutil.SeedAuthor(t, db, "ada@example.com"),
		events:    &recordingEvents{},
		publisher: &recordingPublisher{},
		metrics:   metrics.New(),
		cache:     memory.NewRenderCache(time.Minute),
	}
	f.render = NewRenderService(f.cache, f.metrics, logger.NewNopLogger())
	f.svc = NewPostService(
		unitofwork.NewRepositoryFactory(db),
		f.render,
		f.publisher,
		f.events,
		f.metrics,
		logger.NewNopLogger(),
	)
	return f
}

func documentJSON(t *testing.T, blocks ...lexical.Block) json.RawMessage {
	t.Helper()
	out, err := lexical.Encode(lexical.NewDocument(blocks...))
	require.NoError(t, err)
	return json.RawMessage(out)
}

func (f *fixture) create(t *testing.T, slug, status string, content json.RawMessage) *dto.CreatePostResponse {
	t.Helper()
	res, err := f.svc.Create(t.Context(), f.author.Id, &dto.CreatePostRequest{
		Title:   "Title of " + slug,
		Slug:    slug,
		Content: content,
		Status:  status,
	})
	require.NoError(t, err)
	return res
}

func TestCreateAndShowPublishedPost(t *testing.T) {
	f := newFixture(t)
	content := documentJSON(t,
		lexical.NewHeading(2, lexical.NewText("Intro", 0)),
		lexical.NewParagraph(lexical.NewText("Hello ", 0), lexical.NewText("world", lexical.FormatBold)),
	)

	created := f.create(t, "hello-world", "published", content)
	assert.NotEqual(t, uuid.Nil, created.Id)

	res, err := f.svc.Show(t.Context(), "hello-world")
	require.NoError(t, err)

	assert.Equal(t, "Title of hello-world", res.Title)
	require.NotNil(t, res.Author)
	assert.Equal(t, "ada@example.com", res.Author.DisplayName)
	require.NotNil(t, res.PublishedAt)
	assert.Equal(t, 1, res.ReadingTime)
	assert.Equal(t, "Intro Hello world", res.Excerpt)

	assert.Equal(t, lexical.ModeRichText, res.Content.Mode)
	require.Len(t, res.Content.Blocks, 2)
	assert.Equal(t, "<h2>Intro</h2><p>Hello <strong>world</strong></p>", res.Content.HTML)

	assert.Equal(t, []string{events.PostPublished}, f.events.types())
	require.Len(t, f.publisher.payloads, 1)
	var msg dto.PublishRenderPostMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, created.Id, msg.PostId)
}

func TestShowLegacyPlainTextPost(t *testing.T) {
	f := newFixture(t)
	f.create(t, "legacy", "published", json.RawMessage(`"Line one\n\nLine two"`))

	res, err := f.svc.Show(t.Context(), "legacy")
	require.NoError(t, err)

	assert.Equal(t, lexical.ModePlainText, res.Content.Mode)
	assert.Equal(t, []lexical.DisplayBlock{
		{Kind: lexical.KindParagraph, Key: 0, Spans: []lexical.Span{{Text: "Line one"}}},
		{Kind: lexical.KindLineBreak, Key: 1},
		{Kind: lexical.KindParagraph, Key: 2, Spans: []lexical.Span{{Text: "Line two"}}},
	}, res.Content.Blocks)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.Renders.WithLabelValues("plain_text")))
}

func TestShowEmptyPost(t *testing.T) {
	f := newFixture(t)
	f.create(t, "empty", "published", documentJSON(t))

	res, err := f.svc.Show(t.Context(), "empty")
	require.NoError(t, err)
	assert.Equal(t, lexical.ModeRichText, res.Content.Mode)
	assert.Empty(t, res.Content.Blocks)
	assert.Equal(t, "", res.Content.HTML)
}

func TestCreateErrors(t *testing.T) {
	f := newFixture(t)
	f.create(t, "taken", "", documentJSON(t))

	tests := []struct {
		name     string
		authorId uuid.UUID
		req      dto.CreatePostRequest
		want     error
	}{
		{
			name:     "duplicate slug",
			authorId: f.author.Id,
			req:      dto.CreatePostRequest{Title: "x", Slug: "taken", Content: documentJSON(t)},
			want:     ErrSlugTaken,
		},
		{
			name:     "unknown author",
			authorId: uuid.New(),
			req:      dto.CreatePostRequest{Title: "x", Slug: "fresh", Content: documentJSON(t)},
			want:     ErrAuthorNotFound,
		},
		{
			name:     "malformed document",
			authorId: f.author.Id,
			req:      dto.CreatePostRequest{Title: "x", Slug: "fresh", Content: json.RawMessage(`{"root":{"children":"nope"}}`)},
			want:     lexical.ErrMalformedDocument,
		},
		{
			name:     "not an object or string",
			authorId: f.author.Id,
			req:      dto.CreatePostRequest{Title: "x", Slug: "fresh", Content: json.RawMessage(`[1,2]`)},
			want:     ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(t.Context(), tt.authorId, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDraftsAreHiddenFromReaders(t *testing.T) {
	f := newFixture(t)
	draft := f.create(t, "draft", "", documentJSON(t, lexical.NewParagraph(lexical.NewText("wip", 0))))

	_, err := f.svc.Show(t.Context(), "draft")
	assert.ErrorIs(t, err, ErrPostNotFound)

	list, err := f.svc.List(t.Context(), &dto.ListPostsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(0), list.Total)

	source, err := f.svc.ShowSource(t.Context(), f.author.Id, draft.Id)
	require.NoError(t, err)
	assert.Equal(t, "draft", source.Status)
	assert.Nil(t, source.PublishedAt)
	assert.Equal(t, lexical.ModeRichText, source.Preview.Mode)

	_, err = lexical.Decode(source.Source)
	assert.NoError(t, err)

	assert.Empty(t, f.events.types())
}

func TestUpdatePost(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "first", "", documentJSON(t, lexical.NewParagraph(lexical.NewText("v1", 0))))

	_, err := f.svc.Update(t.Context(), uuid.New(), &dto.UpdatePostRequest{
		Id: created.Id, Title: "x", Slug: "first", Content: documentJSON(t),
	})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.svc.Update(t.Context(), f.author.Id, &dto.UpdatePostRequest{
		Id:      created.Id,
		Title:   "Renamed",
		Slug:    "renamed",
		Content: documentJSON(t, lexical.NewParagraph(lexical.NewText("v2", 0))),
		Status:  "published",
	})
	require.NoError(t, err)

	res, err := f.svc.Show(t.Context(), "renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", res.Title)
	assert.Equal(t, "<p>v2</p>", res.Content.HTML)

	_, err = f.svc.Update(t.Context(), f.author.Id, &dto.UpdatePostRequest{
		Id:      created.Id,
		Title:   "Renamed",
		Slug:    "renamed",
		Content: documentJSON(t, lexical.NewParagraph(lexical.NewText("v3", 0))),
	})
	require.NoError(t, err)

	res, err = f.svc.Show(t.Context(), "renamed")
	require.NoError(t, err)
	assert.Equal(t, "<p>v3</p>", res.Content.HTML)

	assert.Equal(t, []string{events.PostPublished, events.PostUpdated}, f.events.types())
}

func TestUpdateRejectsSlugOfAnotherPost(t *testing.T) {
	f := newFixture(t)
	f.create(t, "one", "", documentJSON(t))
	two := f.create(t, "two", "", documentJSON(t))

	_, err := f.svc.Update(t.Context(), f.author.Id, &dto.UpdatePostRequest{
		Id: two.Id, Title: "x", Slug: "one", Content: documentJSON(t),
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "doomed", "published", documentJSON(t))

	assert.ErrorIs(t, f.svc.Delete(t.Context(), uuid.New(), created.Id), ErrPostNotFound)
	require.NoError(t, f.svc.Delete(t.Context(), f.author.Id, created.Id))

	_, err := f.svc.Show(t.Context(), "doomed")
	assert.ErrorIs(t, err, ErrPostNotFound)

	// soft deleted slugs stay reserved
	_, err = f.svc.Create(t.Context(), f.author.Id, &dto.CreatePostRequest{Title: "x", Slug: "doomed", Content: documentJSON(t)})
	assert.ErrorIs(t, err, ErrSlugTaken)

	assert.Equal(t, []string{events.PostPublished, events.PostDeleted}, f.events.types())
}

func TestDeletingDraftIsNotAnnounced(t *testing.T) {
	f := newFixture(t)
	draft := f.create(t, "secret-draft", "", documentJSON(t))

	require.NoError(t, f.svc.Delete(t.Context(), f.author.Id, draft.Id))
	assert.Empty(t, f.events.types())
}

func TestUnpublishAnnouncesWithdrawal(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "live", "published", documentJSON(t))

	_, err := f.svc.Update(t.Context(), f.author.Id, &dto.UpdatePostRequest{
		Id:      created.Id,
		Title:   "Back to draft",
		Slug:    "live-wip",
		Content: documentJSON(t),
		Status:  "draft",
	})
	require.NoError(t, err)

	_, err = f.svc.Show(t.Context(), "live")
	assert.ErrorIs(t, err, ErrPostNotFound)

	// further draft edits stay quiet
	_, err = f.svc.Update(t.Context(), f.author.Id, &dto.UpdatePostRequest{
		Id: created.Id, Title: "Still wip", Slug: "live-wip", Content: documentJSON(t),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{events.PostPublished, events.PostUnpublished}, f.events.types())
	assert.Equal(t, "live", f.events.events[1].Payload()["slug"])
}

func TestEventFailuresDoNotFailWrites(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("nats down")

	f.create(t, "resilient", "published", documentJSON(t))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.Events.WithLabelValues(events.PostPublished, "failed")))
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	for _, slug := range []string{"a", "b", "c"} {
		f.create(t, slug, "published", documentJSON(t, lexical.NewParagraph(lexical.NewText("body "+slug, 0))))
		time.Sleep(2 * time.Millisecond)
	}
	f.create(t, "hidden", "", documentJSON(t))

	page1, err := f.svc.List(t.Context(), &dto.ListPostsRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page1.Total)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "c", page1.Items[0].Slug)
	assert.Equal(t, "body c", page1.Items[0].Excerpt)
	require.NotNil(t, page1.Items[0].Author)
	assert.Equal(t, f.author.Id, page1.Items[0].Author.Id)

	page2, err := f.svc.List(t.Context(), &dto.ListPostsRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "a", page2.Items[0].Slug)

	defaults, err := f.svc.List(t.Context(), &dto.ListPostsRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, maxPageSize, defaults.Limit)
}

func TestShowUsesRenderCache(t *testing.T) {
	f := newFixture(t)
	f.create(t, "cached", "published", documentJSON(t, lexical.NewParagraph(lexical.NewText("x", 0))))

	for range 3 {
		_, err := f.svc.Show(t.Context(), "cached")
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.CacheLookup.WithLabelValues("miss")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(f.metrics.CacheLookup.WithLabelValues("hit")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.Renders.WithLabelValues("rich_text")))
}

func TestMarkdownExport(t *testing.T) {
	f := newFixture(t)
	f.create(t, "md", "published", documentJSON(t,
		lexical.NewParagraph(lexical.NewText("Hello ", 0), lexical.NewText("world", lexical.FormatBold)),
	))

	out, err := f.svc.Markdown(t.Context(), "md")
	require.NoError(t, err)
	assert.Contains(t, out, "# Title of md")
	assert.Contains(t, out, "Hello **world**")

	_, err = f.svc.Markdown(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
