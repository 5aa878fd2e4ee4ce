package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported values for StorageConfig.Backend.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// DatabaseConfig holds relational database connection settings.
type DatabaseConfig struct {
	Driver             string `yaml:"driver"`
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"sslmode"`
	SQLitePath         string `yaml:"sqlite_path"`
	MaxOpenConns       int    `yaml:"max_open_conns"`
	MaxIdleConns       int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `yaml:"conn_max_lifetime_sec"`
}

// StorageConfig selects where uploaded files are written.
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	UploadDir string `yaml:"upload_dir"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string         `yaml:"app_host"`
	Port     string         `yaml:"port"`
	Timezone string         `yaml:"timezone"`
	LogLevel string         `yaml:"log_level"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	MinIO    MinIOConfig    `yaml:"minio"`
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
//
// When APP_CONFIG_FILE points at a YAML file, its values replace the built-in
// defaults; real environment variables still take precedence over both.
func Load() (*AppConfig, error) {
	base := defaults()
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		if err := loadFile(path, base); err != nil {
			return nil, err
		}
	}

	return &AppConfig{
		AppHost:  getEnv("APP_HOST", base.AppHost),
		Port:     getEnv("PORT", base.Port),
		Timezone: getEnv("APP_TIMEZONE", base.Timezone),
		LogLevel: getEnv("LOG_LEVEL", base.LogLevel),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", base.Database.Driver),
			Host:               getEnv("DB_HOST", base.Database.Host),
			Port:               getEnv("DB_PORT", base.Database.Port),
			User:               getEnv("DB_USER", base.Database.User),
			Password:           getEnv("DB_PASSWORD", base.Database.Password),
			Name:               getEnv("DB_NAME", base.Database.Name),
			SSLMode:            getEnv("DB_SSLMODE", base.Database.SSLMode),
			SQLitePath:         getEnv("SQLITE_PATH", base.Database.SQLitePath),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", base.Database.MaxOpenConns),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", base.Database.MaxIdleConns),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", base.Database.ConnMaxLifetimeSec),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", base.Storage.Backend),
			UploadDir: getEnv("UPLOAD_DIR", base.Storage.UploadDir),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", base.MinIO.Endpoint),
			AccessKey: getEnv("MINIO_ACCESS_KEY", base.MinIO.AccessKey),
			SecretKey: getEnv("MINIO_SECRET_KEY", base.MinIO.SecretKey),
			Bucket:    getEnv("MINIO_BUCKET", base.MinIO.Bucket),
			UseSSL:    getEnvBool("MINIO_USE_SSL", base.MinIO.UseSSL),
		},
	}, nil
}

// defaults only covers non-sensitive values.
func defaults() *AppConfig {
	return &AppConfig{
		AppHost:  "localhost:8000",
		Port:     "8000",
		Timezone: "UTC",
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver:             DriverPostgres,
			Port:               "5432",
			SSLMode:            "disable",
			SQLitePath:         "notes.db",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		Storage: StorageConfig{
			Backend:   BackendLocal,
			UploadDir: "uploads",
		},
	}
}

func loadFile(path string, into *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
