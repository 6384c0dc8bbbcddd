package controller

import (
	"errors"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Markdown(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	ShowSource(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
	jwtSecret   string
}

func NewPostController(postService service.IPostService, jwtSecret string) IPostController {
	return &postController{
		postService: postService,
		jwtSecret:   jwtSecret,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	public := r.Group("/blog/v1/posts")
	public.Get("", c.List)
	public.Get(":slug", c.Show)
	public.Get(":slug/markdown", c.Markdown)

	author := r.Group("/blog/v1/author/posts")
	author.Use(serverutils.JwtMiddleware(c.jwtSecret))
	author.Post("", c.Create)
	author.Get(":id", c.ShowSource)
	author.Put(":id", c.Update)
	author.Delete(":id", c.Delete)
}

func (c *postController) List(ctx *fiber.Ctx) error {
	var req dto.ListPostsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.List(ctx.UserContext(), &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	res, err := c.postService.Show(ctx.UserContext(), ctx.Params("slug"))
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) Markdown(ctx *fiber.Ctx) error {
	out, err := c.postService.Markdown(ctx.UserContext(), ctx.Params("slug"))
	if err != nil {
		return mapServiceError(err)
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return ctx.SendString(out)
}

func (c *postController) Create(ctx *fiber.Ctx) error {
	authorId, err := currentAuthor(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Create(ctx.UserContext(), authorId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create post", res))
}

func (c *postController) ShowSource(ctx *fiber.Ctx) error {
	authorId, err := currentAuthor(ctx)
	if err != nil {
		return err
	}
	id, err := postIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.postService.ShowSource(ctx.UserContext(), authorId, id)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post source", res))
}

func (c *postController) Update(ctx *fiber.Ctx) error {
	authorId, err := currentAuthor(ctx)
	if err != nil {
		return err
	}
	id, err := postIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Update(ctx.UserContext(), authorId, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	authorId, err := currentAuthor(ctx)
	if err != nil {
		return err
	}
	id, err := postIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.postService.Delete(ctx.UserContext(), authorId, id); err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func currentAuthor(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := serverutils.UserID(ctx)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Missing user")
	}
	return id, nil
}

func postIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		// malformed ids cannot name a post
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, service.ErrPostNotFound.Error())
	}
	return id, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrSlugTaken):
		return fiber.NewError(fiber.StatusBadRequest, "Slug already exists")
	case errors.Is(err, service.ErrAuthorNotFound):
		return fiber.NewError(fiber.StatusForbidden, "Author not found")
	case errors.Is(err, service.ErrInvalidContent):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
