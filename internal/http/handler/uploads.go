package handler

import (
	_ "embed"
	"errors"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"notesapi/internal/model"
	"notesapi/internal/service"
	"notesapi/internal/storage"
)

// StaticPrefix is the URL prefix under which uploaded files are served.
const StaticPrefix = "/static"

//go:embed index.html
var indexHTML string

var errFileRequired = errors.New("file is required")

// Index serves the upload form.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(indexHTML)
	}
}

// UploadAndLink godoc
// @Summary Upload a file and get its static URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} filePathResponse
// @Failure 422 {object} validationPayload
// @Router / [post]
func UploadAndLink(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := receiveUpload(c, svc)
		if err != nil {
			return uploadError(c, err)
		}
		return c.JSON(filePathResponse{FilePath: staticURL(c, file.Filename)})
	}
}

// UploadFile godoc
// @Summary Upload a file and get its storage path
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} filePathResponse
// @Failure 422 {object} validationPayload
// @Router /uploadfile [post]
func UploadFile(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := receiveUpload(c, svc)
		if err != nil {
			return uploadError(c, err)
		}
		return c.JSON(filePathResponse{FilePath: file.Path})
	}
}

// ServeStatic streams a previously uploaded file.
func ServeStatic(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("*"))
		if err != nil {
			return fiber.ErrNotFound
		}

		rc, info, err := svc.Open(c.UserContext(), name)
		if errors.Is(err, storage.ErrNotExist) || errors.Is(err, storage.ErrInvalidKey) {
			return fiber.ErrNotFound
		}
		if err != nil {
			return err
		}

		switch ext := filepath.Ext(name); {
		case info.ContentType != "":
			c.Set(fiber.HeaderContentType, info.ContentType)
		case ext != "":
			c.Type(ext)
		default:
			c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}

type filePathResponse struct {
	FilePath string `json:"file_path"`
}

// receiveUpload reads the "file" form field and hands it to the upload service.
func receiveUpload(c *fiber.Ctx, svc service.UploadService) (*model.UploadedFile, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errFileRequired
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = fiber.MIMEOctetStream
	}
	return svc.Save(c.UserContext(), f, fh.Filename, ct, fh.Size)
}

// uploadError maps client mistakes to 422 and passes everything else on to
// the global error handler.
func uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errFileRequired):
		return writeValidationError(c, missingField("body", "file"))
	case errors.Is(err, service.ErrInvalidFilename):
		return writeValidationError(c, fieldError{
			Loc:  []string{"body", "file"},
			Msg:  "filename must name a file",
			Type: "value_error",
		})
	default:
		return err
	}
}

func staticURL(c *fiber.Ctx, filename string) string {
	return c.BaseURL() + StaticPrefix + "/" + url.PathEscape(filename)
}
