package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/pkg/serverutils"
	internalWS "blog-publishing-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRejectsPlainRequests(t *testing.T) {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandlerMiddleware()})
	NewFeedHandler(internalWS.NewHub(nil, log), log).RegisterRoutes(app.Group("/api"))

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "no upgrade", path: "/api/blog/v1/feed", status: http.StatusUpgradeRequired},
		{name: "bad author", path: "/api/blog/v1/feed?author=nope", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
