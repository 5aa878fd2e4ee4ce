package handler

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/service"
)

// Parameter bounds for the notes endpoints.
const (
	minNoteID    = 1
	maxNoteID    = 10
	minListLimit = 10
	maxListLimit = 100
)

type createNoteRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// Locals keys carrying validated parameters from the validate step to the handler.
const (
	noteInputKey = "note_input"
	pageKey      = "page"
	noteIDKey    = "note_id"
)

type pageParams struct {
	Skip  int
	Limit int
}

// ValidateCreateNote decodes and checks the create body. It runs ahead of the
// session middleware so a bad body never takes a database connection.
func ValidateCreateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createNoteRequest
		if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
			return writeValidationError(c, fieldError{
				Loc:  []string{"body"},
				Msg:  "invalid JSON body",
				Type: "json_invalid",
			})
		}

		var missing []fieldError
		if req.Name == nil {
			missing = append(missing, missingField("body", "name"))
		}
		if req.Description == nil {
			missing = append(missing, missingField("body", "description"))
		}
		if req.Done == nil {
			missing = append(missing, missingField("body", "done"))
		}
		if len(missing) > 0 {
			return writeValidationError(c, missing...)
		}

		c.Locals(noteInputKey, req)
		return c.Next()
	}
}

// CreateNote godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body createNoteRequest true "Note to create"
// @Success 200 {object} model.Note
// @Failure 422 {object} validationPayload
// @Router /notes [post]
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := c.Locals(noteInputKey).(createNoteRequest)

		note, err := svc.Create(c.UserContext(), *req.Name, *req.Description, *req.Done)
		if err != nil {
			return err
		}
		return c.JSON(note)
	}
}

// ValidateListNotes checks skip and limit before the session is opened.
func ValidateListNotes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs []fieldError
		skip, ferr := boundedInt("query", "skip", c.Query("skip"), 0, 0, math.MaxInt32)
		if ferr != nil {
			errs = append(errs, *ferr)
		}
		limit, ferr := boundedInt("query", "limit", c.Query("limit"), minListLimit, minListLimit, maxListLimit)
		if ferr != nil {
			errs = append(errs, *ferr)
		}
		if len(errs) > 0 {
			return writeValidationError(c, errs...)
		}

		c.Locals(pageKey, pageParams{Skip: int(skip), Limit: int(limit)})
		return c.Next()
	}
}

// ListNotes godoc
// @Summary List notes
// @Tags notes
// @Produce json
// @Param skip query int false "Offset" minimum(0) default(0)
// @Param limit query int false "Page size" minimum(10) maximum(100) default(10)
// @Success 200 {array} model.Note
// @Failure 422 {object} validationPayload
// @Router /notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.Locals(pageKey).(pageParams)

		notes, err := svc.List(c.UserContext(), page.Skip, page.Limit)
		if err != nil {
			return err
		}
		return c.JSON(notes)
	}
}

// ValidateGetNote checks the path id before the session is opened.
func ValidateGetNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ferr := boundedInt("path", "id", c.Params("id"), 0, minNoteID, maxNoteID)
		if ferr != nil {
			return writeValidationError(c, *ferr)
		}
		c.Locals(noteIDKey, id)
		return c.Next()
	}
}

// GetNote godoc
// @Summary Get a note by ID
// @Tags notes
// @Produce json
// @Param id path int true "The ID of the note to get" minimum(1) maximum(10)
// @Success 200 {object} model.Note
// @Failure 404 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /notes/{id} [get]
func GetNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Locals(noteIDKey).(int64)

		note, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		if note == nil {
			return writeError(c, fiber.StatusNotFound, MessageNotFound)
		}
		return c.JSON(note)
	}
}
