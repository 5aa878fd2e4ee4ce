package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/database"
)

// HealthMessage is returned by the liveness probe when the database answers.
const HealthMessage = "Welcome to FastAPI!"

var errUnexpectedProbe = errors.New("database is not configured correctly")

// messageResponse is the liveness probe body.
type messageResponse struct {
	Message string `json:"message"`
}

// HealthCheck godoc
// @Summary Database liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} messageResponse
// @Failure 500 {object} errorPayload
// @Router /api/healthchecker [get]
func HealthCheck(db *sql.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		var one int
		err := database.SessionFrom(ctx, db).QueryRowContext(ctx, "SELECT 1").Scan(&one)
		if err == nil && one != 1 {
			err = errUnexpectedProbe
		}
		if err != nil {
			logger.Error("healthcheck_failed", "request_id", requestIDFromCtx(c), "error", err.Error())
			return fiber.NewError(fiber.StatusInternalServerError, "Error connecting to the database")
		}
		return c.JSON(messageResponse{Message: HealthMessage})
	}
}
