// Пакет config — загрузка и валидация конфигурации API Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации API Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- JWT ---

	// Путь к приватному RSA-ключу (PEM) для подписи токенов
	JWTPrivateKeyPath string
	// Issuer выдаваемых токенов
	JWTIssuer string
	// Время жизни access-токена
	JWTTokenTTL time.Duration
	// Допустимое отклонение времени при проверке токена
	JWTLeeway time.Duration

	// --- Локализация ---

	// Локаль по умолчанию (en, ru)
	DefaultLocale string

	// --- Push-уведомления ---

	// URL push-шлюза (пустая строка — push отключён)
	PushGatewayURL string
	// API-ключ push-шлюза
	PushAPIKey string
	// Таймаут запросов к push-шлюзу
	PushTimeout time.Duration

	// --- Файловое хранилище ---

	// Каталог для загруженных файлов
	UploadDir string
	// Максимальный размер загружаемого файла (байты)
	MaxUploadSize int64
	// Базовый URL для раздачи файлов (например, https://api.balu.example)
	FileBaseURL string

	// --- Кэш пользователей ---

	// Максимальное количество записей LRU-кэша
	CacheSize int
	// TTL записи кэша
	CacheTTL time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// BP_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("BP_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("BP_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("BP_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// BP_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("BP_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("BP_LOG_LEVEL: %w", err)
	}

	// BP_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("BP_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("BP_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// BP_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("BP_DB_HOST")
	if err != nil {
		return nil, err
	}

	// BP_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("BP_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("BP_DB_PORT: %w", err)
	}

	// BP_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("BP_DB_NAME")
	if err != nil {
		return nil, err
	}

	// BP_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("BP_DB_USER")
	if err != nil {
		return nil, err
	}

	// BP_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("BP_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// BP_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("BP_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("BP_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- JWT ---

	// BP_JWT_PRIVATE_KEY_PATH — обязательный
	cfg.JWTPrivateKeyPath, err = getEnvRequired("BP_JWT_PRIVATE_KEY_PATH")
	if err != nil {
		return nil, err
	}

	// BP_JWT_ISSUER — issuer токенов (по умолчанию balu-property)
	cfg.JWTIssuer = getEnvDefault("BP_JWT_ISSUER", "balu-property")

	// BP_JWT_TOKEN_TTL — время жизни токена (по умолчанию 24h)
	cfg.JWTTokenTTL, err = getEnvDuration("BP_JWT_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("BP_JWT_TOKEN_TTL: %w", err)
	}

	// BP_JWT_LEEWAY — отклонение времени при проверке (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("BP_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("BP_JWT_LEEWAY: %w", err)
	}

	// --- Локализация ---

	// BP_DEFAULT_LOCALE — локаль по умолчанию (по умолчанию en)
	cfg.DefaultLocale = getEnvDefault("BP_DEFAULT_LOCALE", "en")
	if cfg.DefaultLocale != "en" && cfg.DefaultLocale != "ru" {
		return nil, fmt.Errorf("BP_DEFAULT_LOCALE: недопустимое значение %q, допустимые: en, ru", cfg.DefaultLocale)
	}

	// --- Push-уведомления ---

	// BP_PUSH_GATEWAY_URL — URL push-шлюза (опционально; пустая строка — push отключён)
	cfg.PushGatewayURL = strings.TrimRight(getEnvDefault("BP_PUSH_GATEWAY_URL", ""), "/")

	// BP_PUSH_API_KEY — API-ключ push-шлюза
	cfg.PushAPIKey = getEnvDefault("BP_PUSH_API_KEY", "")

	// BP_PUSH_TIMEOUT — таймаут запросов к push-шлюзу (по умолчанию 5s)
	cfg.PushTimeout, err = getEnvDuration("BP_PUSH_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("BP_PUSH_TIMEOUT: %w", err)
	}

	// --- Файловое хранилище ---

	// BP_UPLOAD_DIR — каталог загрузок (по умолчанию /var/lib/balu/uploads)
	cfg.UploadDir = getEnvDefault("BP_UPLOAD_DIR", "/var/lib/balu/uploads")

	// BP_MAX_UPLOAD_SIZE — максимальный размер файла (по умолчанию 20 MiB)
	maxUpload, err := getEnvInt("BP_MAX_UPLOAD_SIZE", 20<<20)
	if err != nil {
		return nil, fmt.Errorf("BP_MAX_UPLOAD_SIZE: %w", err)
	}
	if maxUpload < 1 {
		return nil, fmt.Errorf("BP_MAX_UPLOAD_SIZE: значение %d должно быть положительным", maxUpload)
	}
	cfg.MaxUploadSize = int64(maxUpload)

	// BP_FILE_BASE_URL — базовый URL раздачи файлов
	cfg.FileBaseURL = strings.TrimRight(getEnvDefault("BP_FILE_BASE_URL", ""), "/")

	// --- Кэш пользователей ---

	// BP_CACHE_SIZE — размер LRU-кэша (по умолчанию 1000)
	cfg.CacheSize, err = getEnvInt("BP_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("BP_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("BP_CACHE_SIZE: значение %d должно быть положительным", cfg.CacheSize)
	}

	// BP_CACHE_TTL — TTL записи кэша (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("BP_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("BP_CACHE_TTL: %w", err)
	}

	// --- Graceful shutdown ---

	// BP_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("BP_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("BP_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
