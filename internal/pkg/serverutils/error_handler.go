package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the fiber ErrorHandler. Every failure leaves the
// server in the same envelope as ErrorResponse.
func ErrorHandlerMiddleware() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			body := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
			body.Errors = validationErr.Fields
			return ctx.Status(fiber.StatusBadRequest).JSON(body)
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
