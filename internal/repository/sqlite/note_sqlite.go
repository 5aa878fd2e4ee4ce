package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"notesapi/internal/database"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

// NoteSQLite is the SQLite implementation of repository.NoteRepository.
// It differs from the PostgreSQL one only in placeholder syntax.
type NoteSQLite struct {
	db *sql.DB
}

// NewNoteSQLite creates a new NoteSQLite repository.
func NewNoteSQLite(db *sql.DB) *NoteSQLite {
	return &NoteSQLite{db: db}
}

var _ repository.NoteRepository = (*NoteSQLite)(nil)

func (r *NoteSQLite) q(ctx context.Context) database.Querier {
	return database.SessionFrom(ctx, r.db)
}

func (r *NoteSQLite) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (name, description, done)
		VALUES (?, ?, ?)
		RETURNING id, name, description, done
	`
	var out model.Note
	err := r.q(ctx).QueryRowContext(ctx, q, note.Name, note.Description, note.Done).
		Scan(&out.ID, &out.Name, &out.Description, &out.Done)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *NoteSQLite) FindByID(ctx context.Context, id int64) (*model.Note, error) {
	const q = `SELECT id, name, description, done FROM notes WHERE id = ?`
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

func (r *NoteSQLite) List(ctx context.Context, pq repository.PageQuery) ([]model.Note, error) {
	const q = `SELECT id, name, description, done FROM notes ORDER BY id LIMIT ? OFFSET ?`
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
	return items, rows.Err()
}
