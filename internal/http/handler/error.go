package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/http/middleware"
)

// MessageNotFound is the body message for a note lookup that matched no row.
const MessageNotFound = "Item not found"

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Message string `json:"message"`
}

// fieldError describes one rejected request parameter.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// validationPayload is returned with 422 when parameters fail validation.
type validationPayload struct {
	Message string       `json:"message"`
	Detail  []fieldError `json:"detail"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes {"message": message} with the given status.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Message: message})
}

// writeValidationError rejects the request with 422 before any handler logic runs.
func writeValidationError(c *fiber.Ctx, errs ...fieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(validationPayload{
		Message: "validation error",
		Detail:  errs,
	})
}

// ErrorHandler returns the Fiber global error handler.
//
// *fiber.Error values (raised by handlers, or by Fiber for unknown routes and
// methods) keep their status and message. Anything else is logged and
// reported as a bare 500 so internals never reach the client.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, fe.Code, fe.Message)
		}

		logger.Error("unhandled_error",
			"request_id", requestIDFromCtx(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		return writeError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}
