package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string
	DBDriver       string
	DBApplySchema  bool
	JWTSecretKey   string
	ServerPort     int
	LogLevel       slog.Level
	AllowedOrigins []string
	Storage        StorageConfig
}

// StorageConfig описывает бакет с логотипами команд. Пустой Bucket отключает ссылки на логотипы.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	PresignTTL      time.Duration
}

// Enabled сообщает, настроено ли хранилище хоть как-то.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" || s.PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает Config из произвольного источника переменных.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	driver := strings.ToLower(strings.TrimSpace(getenv("DB_DRIVER")))
	switch driver {
	case "":
		driver = "postgres"
	case "postgres", "pgx", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected postgres, pgx or sqlite)", driver)
	}

	applySchema := false
	if raw := getenv("DB_APPLY_SCHEMA"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_APPLY_SCHEMA environment variable: %w", err)
		}
		applySchema = v
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level := slog.LevelInfo
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	origins := splitList(getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5001"}
	}

	storage := StorageConfig{
		Endpoint:        getenv("STORAGE_ENDPOINT"),
		Region:          getenv("STORAGE_REGION"),
		AccessKeyID:     getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("STORAGE_SECRET_ACCESS_KEY"),
		Bucket:          getenv("STORAGE_BUCKET"),
		PublicBaseURL:   getenv("STORAGE_PUBLIC_BASE_URL"),
	}
	if raw := getenv("STORAGE_PRESIGN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid STORAGE_PRESIGN_TTL environment variable: %q", raw)
		}
		storage.PresignTTL = ttl
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		DBDriver:       driver,
		DBApplySchema:  applySchema,
		JWTSecretKey:   jwtKey,
		ServerPort:     port,
		LogLevel:       level,
		AllowedOrigins: origins,
		Storage:        storage,
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
