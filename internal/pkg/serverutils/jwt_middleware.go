package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const LocalUserID = "user_id"

// ErrEmptySecret is returned when signing with no HMAC key. An empty key
// would let anyone mint a valid token.
var ErrEmptySecret = errors.New("jwt secret is empty")

// JwtMiddleware verifies HMAC signed bearer tokens issued elsewhere and stores
// the user_id claim as a uuid.UUID in ctx.Locals. With an empty secret every
// request is rejected.
func JwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)

	return func(ctx *fiber.Ctx) error {
		if len(key) == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication is not configured")
		}

		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
		}

		raw, _ := claims["user_id"].(string)
		userId, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
		}

		ctx.Locals(LocalUserID, userId)
		return ctx.Next()
	}
}

// UserID reads what JwtMiddleware stored.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	return id, ok
}
