package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"notesapi/internal/model"
	"notesapi/internal/storage"
)

var (
	ErrInvalidFilename = errors.New("invalid filename")
	ErrReaderNil       = errors.New("reader is nil")
)

// UploadService stores uploaded files and reads them back for static serving.
type UploadService interface {
	// Save writes the whole content of r under the normalized filename,
	// replacing any earlier upload with the same name.
	Save(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*model.UploadedFile, error)

	// Open returns a stored file. Missing files yield storage.ErrNotExist.
	Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error)
}

type uploadService struct {
	store storage.Storage
}

// NewUploadService constructs a new UploadService.
func NewUploadService(store storage.Storage) UploadService {
	return &uploadService{store: store}
}

// SanitizeFilename reduces a client-supplied name to its last path element.
// Backslashes count as separators so Windows paths are handled too.
func SanitizeFilename(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	switch {
	case strings.TrimSpace(base) == "", base == ".", base == "..", base == "/":
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return base, nil
}

func (s *uploadService) Save(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*model.UploadedFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	key, err := SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	return &model.UploadedFile{
		Filename:    key,
		Path:        info.Path,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

func (s *uploadService) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, filename)
}
