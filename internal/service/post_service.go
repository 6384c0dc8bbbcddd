package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/entity"
	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/tracer"
	"blog-publishing-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// EventPublisher is satisfied by the NATS publisher and the live feed hub.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPostService interface {
	Create(ctx context.Context, authorId uuid.UUID, req *dto.CreatePostRequest) (*dto.CreatePostResponse, error)
	Update(ctx context.Context, authorId uuid.UUID, req *dto.UpdatePostRequest) (*dto.UpdatePostResponse, error)
	Delete(ctx context.Context, authorId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, req *dto.ListPostsRequest) (*dto.PostListResponse, error)
	Show(ctx context.Context, slug string) (*dto.ShowPostResponse, error)
	ShowSource(ctx context.Context, authorId uuid.UUID, id uuid.UUID) (*dto.PostSourceResponse, error)
	Markdown(ctx context.Context, slug string) (string, error)
}

type postService struct {
	uowFactory       unitofwork.RepositoryFactory
	renderService    IRenderService
	publisherService IPublisherService
	eventPublisher   EventPublisher
	metrics          *metrics.Metrics
	logger           logger.ILogger
	tracer           trace.Tracer
	now              func() time.Time
}

func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	m *metrics.Metrics,
	log logger.ILogger,
) IPostService {
	return &postService{
		uowFactory:       uowFactory,
		renderService:    renderService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		metrics:          m,
		logger:           log,
		tracer:           tracer.Tracer(),
		now:              time.Now,
	}
}

func (s *postService) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "PostService."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *postService) Create(ctx context.Context, authorId uuid.UUID, req *dto.CreatePostRequest) (res *dto.CreatePostResponse, err error) {
	ctx, span := s.startSpan(ctx, "Create", attribute.String("post.slug", req.Slug))
	defer func() { endSpan(span, err) }()

	content, err := normalizeContent(req.Content)
	if err != nil {
		return nil, err
	}
	excerpt, readingTime := contentStats(content)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := s.ensureAuthor(ctx, uow.AuthorRepository(), authorId); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, uow.PostRepository(), req.Slug, uuid.Nil); err != nil {
		return nil, err
	}

	post := entity.Post{
		Id:          uuid.New(),
		Slug:        req.Slug,
		Title:       req.Title,
		Content:     content,
		Status:      statusOrDraft(req.Status),
		Excerpt:     excerpt,
		ReadingTime: readingTime,
		AuthorId:    authorId,
	}
	if post.IsPublished() {
		now := s.now()
		post.PublishedAt = &now
	}

	if err := uow.PostRepository().Create(ctx, &post); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.requestRender(ctx, post.Id)
	if post.IsPublished() {
		s.publishEvent(ctx, events.PostPublished, &post)
	}

	return &dto.CreatePostResponse{
		Id:   post.Id,
		Slug: post.Slug,
	}, nil
}

func (s *postService) Update(ctx context.Context, authorId uuid.UUID, req *dto.UpdatePostRequest) (res *dto.UpdatePostResponse, err error) {
	ctx, span := s.startSpan(ctx, "Update", attribute.String("post.id", req.Id.String()))
	defer func() { endSpan(span, err) }()

	content, err := normalizeContent(req.Content)
	if err != nil {
		return nil, err
	}
	excerpt, readingTime := contentStats(content)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	post, err := s.findOwned(ctx, uow.PostRepository(), authorId, req.Id)
	if err != nil {
		return nil, err
	}
	if post.Slug != req.Slug {
		if err := s.ensureSlugFree(ctx, uow.PostRepository(), req.Slug, post.Id); err != nil {
			return nil, err
		}
	}

	wasPublished := post.IsPublished()
	previousSlug := post.Slug

	post.Title = req.Title
	post.Slug = req.Slug
	post.Content = content
	post.Excerpt = excerpt
	post.ReadingTime = readingTime
	if req.Status != "" {
		post.Status = entity.PostStatus(req.Status)
	}

	switch {
	case post.IsPublished() && post.PublishedAt == nil:
		now := s.now()
		post.PublishedAt = &now
	case !post.IsPublished():
		post.PublishedAt = nil
	}

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.requestRender(ctx, post.Id)
	switch {
	case post.IsPublished() && !wasPublished:
		s.publishEvent(ctx, events.PostPublished, post)
	case post.IsPublished():
		s.publishEvent(ctx, events.PostUpdated, post)
	case wasPublished:
		// readers only ever saw the old slug
		withdrawn := *post
		withdrawn.Slug = previousSlug
		s.publishEvent(ctx, events.PostUnpublished, &withdrawn)
	}

	return &dto.UpdatePostResponse{
		Id:   post.Id,
		Slug: post.Slug,
	}, nil
}

func (s *postService) Delete(ctx context.Context, authorId uuid.UUID, id uuid.UUID) (err error) {
	ctx, span := s.startSpan(ctx, "Delete", attribute.String("post.id", id.String()))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := s.findOwned(ctx, uow.PostRepository(), authorId, id)
	if err != nil {
		return err
	}

	if err := uow.PostRepository().Delete(ctx, post.Id); err != nil {
		return err
	}

	// drafts were never public, so their removal is not announced
	if post.IsPublished() {
		s.publishEvent(ctx, events.PostDeleted, post)
	}
	return nil
}

func (s *postService) List(ctx context.Context, req *dto.ListPostsRequest) (res *dto.PostListResponse, err error) {
	ctx, span := s.startSpan(ctx, "List")
	defer func() { endSpan(span, err) }()

	page := max(req.Page, 1)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	posts, err := uow.PostRepository().FindAll(ctx,
		specification.Published(),
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.PostRepository().Count(ctx, specification.Published())
	if err != nil {
		return nil, err
	}

	authors, err := s.authorSummaries(ctx, uow.AuthorRepository(), posts)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostListItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, &dto.PostListItem{
			Id:          post.Id,
			Slug:        post.Slug,
			Title:       post.Title,
			Excerpt:     post.Excerpt,
			ReadingTime: post.ReadingTime,
			Author:      authors[post.AuthorId],
			PublishedAt: post.PublishedAt,
		})
	}

	return &dto.PostListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (s *postService) Show(ctx context.Context, slug string) (res *dto.ShowPostResponse, err error) {
	ctx, span := s.startSpan(ctx, "Show", attribute.String("post.slug", slug))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := s.findPublished(ctx, uow.PostRepository(), slug)
	if err != nil {
		return nil, err
	}

	authors, err := s.authorSummaries(ctx, uow.AuthorRepository(), []*entity.Post{post})
	if err != nil {
		return nil, err
	}

	rendered := s.renderService.Render(ctx, post)
	span.SetAttributes(attribute.String("render.mode", string(rendered.Mode)))

	return &dto.ShowPostResponse{
		Id:          post.Id,
		Slug:        post.Slug,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		ReadingTime: post.ReadingTime,
		Author:      authors[post.AuthorId],
		Content:     rendered,
		PublishedAt: post.PublishedAt,
		UpdatedAt:   post.UpdatedAt,
	}, nil
}

func (s *postService) ShowSource(ctx context.Context, authorId uuid.UUID, id uuid.UUID) (res *dto.PostSourceResponse, err error) {
	ctx, span := s.startSpan(ctx, "ShowSource", attribute.String("post.id", id.String()))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := s.findOwned(ctx, uow.PostRepository(), authorId, id)
	if err != nil {
		return nil, err
	}

	return &dto.PostSourceResponse{
		Id:          post.Id,
		Slug:        post.Slug,
		Title:       post.Title,
		Status:      string(post.Status),
		Source:      post.Content,
		Preview:     s.renderService.Render(ctx, post),
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}, nil
}

func (s *postService) Markdown(ctx context.Context, slug string) (out string, err error) {
	ctx, span := s.startSpan(ctx, "Markdown", attribute.String("post.slug", slug))
	defer func() { endSpan(span, err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := s.findPublished(ctx, uow.PostRepository(), slug)
	if err != nil {
		return "", err
	}

	return s.renderService.Markdown(post)
}

func (s *postService) ensureAuthor(ctx context.Context, repo contract.AuthorRepository, authorId uuid.UUID) error {
	author, err := repo.FindOne(ctx, specification.ByID{ID: authorId})
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}
	return nil
}

// ensureSlugFree also counts soft-deleted posts, the unique index does.
func (s *postService) ensureSlugFree(ctx context.Context, repo contract.PostRepository, slug string, self uuid.UUID) error {
	existing, err := repo.FindOne(ctx, specification.BySlug{Slug: slug}, specification.IncludeDeleted{})
	if err != nil {
		return err
	}
	if existing != nil && existing.Id != self {
		return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}
	return nil
}

func (s *postService) findOwned(ctx context.Context, repo contract.PostRepository, authorId, id uuid.UUID) (*entity.Post, error) {
	post, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.PostOwnedBy{AuthorID: authorId},
	)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) findPublished(ctx context.Context, repo contract.PostRepository, slug string) (*entity.Post, error) {
	post, err := repo.FindOne(ctx, specification.BySlug{Slug: slug}, specification.Published())
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) authorSummaries(ctx context.Context, repo contract.AuthorRepository, posts []*entity.Post) (map[uuid.UUID]*dto.AuthorSummary, error) {
	summaries := make(map[uuid.UUID]*dto.AuthorSummary)
	if len(posts) == 0 {
		return summaries, nil
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, post := range posts {
		if !seen[post.AuthorId] {
			seen[post.AuthorId] = true
			ids = append(ids, post.AuthorId)
		}
	}

	authors, err := repo.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, author := range authors {
		summaries[author.Id] = &dto.AuthorSummary{Id: author.Id, DisplayName: author.DisplayName}
	}
	return summaries, nil
}

// requestRender asks the consumer to warm the render cache. Failures only
// cost a cold first read.
func (s *postService) requestRender(ctx context.Context, postId uuid.UUID) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.PublishRenderPostMessage{PostId: postId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("PostService", "Failed to request render warm-up", map[string]interface{}{
			"post_id": postId.String(),
			"error":   err.Error(),
		})
	}
}

func (s *postService) publishEvent(ctx context.Context, eventType string, post *entity.Post) {
	if s.eventPublisher == nil {
		return
	}

	evt := events.NewPostEvent(eventType, post.Id.String(), post.Slug, post.AuthorId.String(), s.now())
	outcome := "ok"
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		outcome = "failed"
		s.logger.Warn("PostService", "Failed to publish "+eventType+" event", map[string]interface{}{
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}
	s.metrics.Events.WithLabelValues(eventType, outcome).Inc()
}

func statusOrDraft(status string) entity.PostStatus {
	if status == "" {
		return entity.PostStatusDraft
	}
	return entity.PostStatus(status)
}
