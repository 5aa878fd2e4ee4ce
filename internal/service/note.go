package service

import (
	"context"

	"notesapi/internal/model"
	"notesapi/internal/repository"
)

// Pagination defaults applied when callers pass out-of-range values.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// NoteService defines the use cases for handling notes.
type NoteService interface {
	// Create stores a new note and returns it with its assigned ID.
	Create(ctx context.Context, name, description string, done bool) (*model.Note, error)

	// List returns up to limit notes starting at offset skip.
	List(ctx context.Context, skip, limit int) ([]model.Note, error)

	// Get returns the note with the given ID, or nil when it does not exist.
	Get(ctx context.Context, id int64) (*model.Note, error)
}

type noteService struct {
	repo repository.NoteRepository
}

// NewNoteService constructs a new NoteService.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) Create(ctx context.Context, name, description string, done bool) (*model.Note, error) {
	return s.repo.Create(ctx, &model.Note{
		Name:        name,
		Description: description,
		Done:        done,
	})
}

func (s *noteService) List(ctx context.Context, skip, limit int) ([]model.Note, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: skip})
}

func (s *noteService) Get(ctx context.Context, id int64) (*model.Note, error) {
	return s.repo.FindByID(ctx, id)
}
