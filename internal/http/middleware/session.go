package middleware

import (
	"database/sql"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/database"
)

// Session acquires a dedicated connection from the pool for the lifetime of
// the request and exposes it through the user context (see
// database.SessionFrom). The connection goes back to the pool when the chain
// returns, whatever the outcome.
func Session(db *sql.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parent := c.UserContext()
		conn, err := db.Conn(parent)
		if err != nil {
			logger.Error("db_session_failed", "error", err.Error(), "path", c.Path())
			return fiber.NewError(fiber.StatusInternalServerError, "Error connecting to the database")
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				logger.Warn("db_session_release_failed", "error", cerr.Error())
			}
			c.SetUserContext(parent)
		}()

		c.SetUserContext(database.WithSession(parent, conn))
		return c.Next()
	}
}
