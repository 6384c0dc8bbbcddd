package handler

import (
	"blog-publishing-be/internal/pkg/logger"
	internalWS "blog-publishing-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// FeedHandler upgrades readers to a websocket that streams post events.
type FeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewFeedHandler(hub *internalWS.Hub, log logger.ILogger) *FeedHandler {
	return &FeedHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/blog/v1/feed", h.ServeWs)
}

// ServeWs handles websocket requests from the peer. The optional "author"
// query parameter narrows the feed to one author.
func (h *FeedHandler) ServeWs(c *fiber.Ctx) error {
	author := uuid.Nil
	if raw := c.Query("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid author id")
		}
		author = id
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("FeedHandler", "Starting feed session", map[string]interface{}{"author": author.String()})
		internalWS.ServeWs(h.hub, conn, author)
		h.logger.Info("FeedHandler", "Feed session ended", map[string]interface{}{"author": author.String()})
	})(c)
}
