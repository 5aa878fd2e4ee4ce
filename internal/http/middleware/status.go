package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusOf predicts the status the global error handler will write for err.
// Middleware sees chain errors before the handler runs, so the response
// status alone is not final yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
