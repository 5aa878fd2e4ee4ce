package postgres

import (
	"context"
	"database/sql"
	"errors"

	"notesapi/internal/database"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
// Queries run on the request session found in ctx, falling back to the pool.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

func (r *NotePostgres) q(ctx context.Context) database.Querier {
	return database.SessionFrom(ctx, r.db)
}

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (name, description, done)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, done
	`
	row := r.q(ctx).QueryRowContext(ctx, q, note.Name, note.Description, note.Done)
	var out model.Note
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.Done); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single note by its ID. A missing row yields (nil, nil).
func (r *NotePostgres) FindByID(ctx context.Context, id int64) (*model.Note, error) {
	const q = `
		SELECT id, name, description, done
		FROM notes
		WHERE id = $1
	`
	var n model.Note
	err := r.q(ctx).QueryRowContext(ctx, q, id).Scan(&n.ID, &n.Name, &n.Description, &n.Done)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns notes using LIMIT/OFFSET pagination in primary key order.
func (r *NotePostgres) List(ctx context.Context, pq repository.PageQuery) ([]model.Note, error) {
	const q = `
		SELECT id, name, description, done
		FROM notes
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.q(ctx).QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Name, &n.Description, &n.Done); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
