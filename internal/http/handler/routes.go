package handler

import (
	"database/sql"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/http/middleware"
	"notesapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Only the routes that touch the database get a per-request session, and it
// is attached after parameter validation so rejected requests never hold a
// connection.
func RegisterRoutes(app *fiber.App, db *sql.DB, logger *slog.Logger, noteSvc service.NoteService, uploadSvc service.UploadService) {
	app.Get("/", Index())
	app.Post("/", UploadAndLink(uploadSvc))
	app.Post("/uploadfile", UploadFile(uploadSvc))
	app.Get(StaticPrefix+"/*", ServeStatic(uploadSvc))

	session := middleware.Session(db, logger)

	app.Get("/api/healthchecker", session, HealthCheck(db, logger))

	app.Post("/notes", ValidateCreateNote(), session, CreateNote(noteSvc))
	app.Get("/notes", ValidateListNotes(), session, ListNotes(noteSvc))
	app.Get("/notes/:id", ValidateGetNote(), session, GetNote(noteSvc))
}
