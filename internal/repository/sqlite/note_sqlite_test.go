package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"notesapi/internal/config"
	"notesapi/internal/database"
	"notesapi/internal/database/migration"
	"notesapi/internal/logging"
	"notesapi/internal/model"
	"notesapi/internal/repository"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logger := logging.New(&bytes.Buffer{}, "error", nil)
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, config.DriverSQLite, logger, "test"))
	return db
}

func TestNoteSQLite_CreateAndFind(t *testing.T) {
	repo := NewNoteSQLite(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Note{Name: "write report", Description: "q3", Done: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)
}

func TestNoteSQLite_FindMissing(t *testing.T) {
	repo := NewNoteSQLite(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestNoteSQLite_IDsAreNotReused(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteSQLite(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &model.Note{Name: "a"})
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", first.ID)
	require.NoError(t, err)

	second, err := repo.Create(ctx, &model.Note{Name: "b"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestNoteSQLite_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteSQLite(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := repo.Create(ctx, &model.Note{Name: "n", Description: "d"})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, page, 10)
	assert.Equal(t, int64(1), page[0].ID)

	page, err = repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Equal(t, int64(11), page[0].ID)

	page, err = repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 100})
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestNoteSQLite_UsesRequestSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	// the pool holds a single connection, so this only succeeds on the session
	created, err := NewNoteSQLite(db).Create(database.WithSession(ctx, conn), &model.Note{Name: "s"})
	require.NoError(t, err)
	assert.Equal(t, "s", created.Name)
}
