package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware()})
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, ok := UserID(ctx)
		if !ok {
			return errors.New("no user")
		}
		return ctx.JSON(SuccessResponse("me", id.String()))
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})
	app.Get("/gone", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Post not found")
	})
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestJwtMiddleware(t *testing.T) {
	app := newTestApp()
	userId := uuid.New()

	valid, err := SignToken(testSecret, userId, time.Hour)
	require.NoError(t, err)
	expired, err := SignToken(testSecret, userId, -time.Hour)
	require.NoError(t, err)
	wrongKey, err := SignToken("other", userId, time.Hour)
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, fiber.StatusUnauthorized},
		{"no user claim", "Bearer " + noUser, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp.Body)
			if tt.status == fiber.StatusOK {
				assert.Equal(t, userId.String(), body["data"])
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestJwtMiddlewareWithEmptySecretRejectsEverything(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware()})
	app.Get("/me", JwtMiddleware(""), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	// a token anyone could mint when the key is empty
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignTokenRefusesEmptySecret(t *testing.T) {
	_, err := SignToken("", uuid.New(), time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode(t, resp.Body)["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/gone", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", decode(t, resp.Body)["message"])
}

type sampleRequest struct {
	Title  string `json:"title" validate:"required"`
	Slug   string `json:"slug" validate:"required,slug"`
	Status string `json:"status" validate:"omitempty,oneof=draft published"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    sampleRequest
		fields []string
	}{
		{"valid", sampleRequest{Title: "t", Slug: "hello-world-2"}, nil},
		{"missing title", sampleRequest{Slug: "ok"}, []string{"title"}},
		{"bad slug", sampleRequest{Title: "t", Slug: "Hello World"}, []string{"slug"}},
		{"double dash", sampleRequest{Title: "t", Slug: "a--b"}, []string{"slug"}},
		{"bad status", sampleRequest{Title: "t", Slug: "ok", Status: "archived"}, []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
