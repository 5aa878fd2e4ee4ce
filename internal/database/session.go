package database

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx used by repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Conn)(nil)
	_ Querier = (*sql.Tx)(nil)
)

type sessionKey struct{}

// WithSession returns a context carrying q as the request's persistence handle.
func WithSession(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, sessionKey{}, q)
}

// SessionFrom returns the handle stored by WithSession, or fallback when the
// context carries none.
func SessionFrom(ctx context.Context, fallback Querier) Querier {
	if q, ok := ctx.Value(sessionKey{}).(Querier); ok && q != nil {
		return q
	}
	return fallback
}
