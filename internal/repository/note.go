// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, sqlite) inside this directory.
package repository

import (
	"context"

	"notesapi/internal/model"
)

// NoteRepository defines data access for notes using SQL queries only.
// No business logic here, only persistence operations.
type NoteRepository interface {
	// Create inserts a new note and returns the stored row, including the
	// database-assigned ID.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// FindByID returns the note with the given ID, or nil and no error when
	// no row matches.
	FindByID(ctx context.Context, id int64) (*model.Note, error)

	// List returns one page of notes ordered by ID.
	List(ctx context.Context, pq PageQuery) ([]model.Note, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}
