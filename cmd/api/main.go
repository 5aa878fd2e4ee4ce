package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"notesapi/internal/config"
	"notesapi/internal/database"
	"notesapi/internal/database/migration"
	"notesapi/internal/http/server"
	"notesapi/internal/logging"
	"notesapi/internal/otel"
	"notesapi/internal/repository"
	"notesapi/internal/repository/postgres"
	"notesapi/internal/repository/sqlite"
	"notesapi/internal/service"
	"notesapi/internal/storage"
)

// @title Notes API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err.Error())
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, logging.LoadLocation(cfg.Timezone))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing_shutdown_failed", "error", err.Error())
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	dbHost := cfg.Database.Host
	if cfg.Database.Driver == config.DriverSQLite {
		dbHost = cfg.Database.SQLitePath
	}
	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, logger, dbHost); err != nil {
		return err
	}

	store, err := newStorage(cfg)
	if err != nil {
		return err
	}

	app, err := server.New(server.Deps{
		DB:      db,
		Logger:  logger,
		Notes:   service.NewNoteService(newNoteRepository(cfg.Database.Driver, db)),
		Uploads: service.NewUploadService(store),
		// advertised by the Swagger document when requests carry no host
		PublicHost: cfg.AppHost,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start", "addr", addr, "db_driver", cfg.Database.Driver, "storage_backend", cfg.Storage.Backend)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutdown", "status", "in_progress")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil {
		return err
	}
	logger.Info("server_shutdown", "status", "success")
	return nil
}

func newNoteRepository(driver string, db *sql.DB) repository.NoteRepository {
	if driver == config.DriverSQLite {
		return sqlite.NewNoteSQLite(db)
	}
	return postgres.NewNotePostgres(db)
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.Storage.Backend == config.BackendMinIO {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Storage.UploadDir)
}
