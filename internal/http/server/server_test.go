package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapi/internal/config"
	"notesapi/internal/database"
	"notesapi/internal/database/migration"
	"notesapi/internal/http/middleware"
	"notesapi/internal/logging"
	"notesapi/internal/model"
	"notesapi/internal/repository/sqlite"
	"notesapi/internal/service"
	"notesapi/internal/storage"
)

// newTestServer wires the real stack against a temporary SQLite file and upload dir.
func newTestServer(t *testing.T) (*fiber.App, *sql.DB, string) {
	t.Helper()

	logger := logging.New(io.Discard, "error", nil)
	db, err := database.NewSQLite(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "notes.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, config.DriverSQLite, logger, "test"))

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocal(uploadDir)
	require.NoError(t, err)

	app, err := New(Deps{
		DB:       db,
		Logger:   logger,
		Notes:    service.NewNoteService(sqlite.NewNoteSQLite(db)),
		Uploads:  service.NewUploadService(store),
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return app, db, uploadDir
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doUpload(t *testing.T, app *fiber.App, target, filename, content string) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func assertProcessTime(t *testing.T, resp *http.Response) {
	t.Helper()
	v := resp.Header.Get(middleware.ProcessTimeHeader)
	require.NotEmpty(t, v)
	secs, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, secs, 0.0)
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestNotesRoundTrip(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/notes", `{"name":"n","description":"d","done":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assertProcessTime(t, resp)

	var created model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.GreaterOrEqual(t, created.ID, int64(1))

	resp = doJSON(t, app, http.MethodGet, "/notes/"+strconv.FormatInt(created.ID, 10), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, model.Note{ID: created.ID, Name: "n", Description: "d", Done: false}, fetched)

	resp = doJSON(t, app, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestNotesErrors(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/notes/5", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Item not found"}`, string(body))
	assertProcessTime(t, resp)

	resp = doJSON(t, app, http.MethodGet, "/notes/11", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assertProcessTime(t, resp)

	resp = doJSON(t, app, http.MethodGet, "/notes?limit=5", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertProcessTime(t, resp)
}

func TestHealthCheck(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/healthchecker", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Welcome to FastAPI!"}`, string(body))
	assertProcessTime(t, resp)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestUploadAndServe(t *testing.T) {
	app, _, uploadDir := newTestServer(t)

	resp := doUpload(t, app, "/", "x.txt", "C")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var link struct {
		FilePath string `json:"file_path"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	assert.Equal(t, "http://example.com/static/x.txt", link.FilePath)

	resp = doJSON(t, app, http.MethodGet, "/static/x.txt", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "C", string(body))

	// same name replaces the earlier content
	resp = doUpload(t, app, "/uploadfile", "x.txt", "second")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	assert.Equal(t, filepath.ToSlash(filepath.Join(uploadDir, "x.txt")), link.FilePath)

	resp = doJSON(t, app, http.MethodGet, "/static/x.txt", "")
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "second", string(body))

	resp = doJSON(t, app, http.MethodGet, "/static/missing.txt", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndexAndMetrics(t *testing.T) {
	app, _, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = doJSON(t, app, http.MethodGet, MetricsPath, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/",status="200"} 1`)
}

func TestValidationWithoutDatabase(t *testing.T) {
	app, db, _ := newTestServer(t)
	require.NoError(t, db.Close())

	for _, target := range []string{"/notes/0", "/notes/11", "/notes?limit=9", "/notes?limit=101", "/notes?skip=-1"} {
		resp := doJSON(t, app, http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, target)
		assertProcessTime(t, resp)
	}

	resp := doJSON(t, app, http.MethodPost, "/notes", `{"name":"n"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// valid parameters still need the database
	resp = doJSON(t, app, http.MethodGet, "/notes/3", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Error connecting to the database"}`, string(body))
}

func TestUnknownNotesPathSkipsSession(t *testing.T) {
	app, db, _ := newTestServer(t)
	require.NoError(t, db.Close())

	resp := doJSON(t, app, http.MethodGet, "/notes/3/extra", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResolveHost(t *testing.T) {
	tests := []struct {
		name, forwarded, host, fallback, want string
	}{
		{"forwarded wins", "api.example.com, proxy", "internal:8000", "localhost:8000", "api.example.com"},
		{"request host", "", "internal:8000", "localhost:8000", "internal:8000"},
		{"configured fallback", "", "", "localhost:8000", "localhost:8000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveHost(tt.forwarded, tt.host, tt.fallback))
		})
	}
}
