package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"bookcopy-server/internal/ai"
)

// Config содержит конфигурацию сервиса.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки сервера
	Port                int      `envconfig:"SERVER_PORT" default:"8080"`
	BasePath            string   `envconfig:"SERVER_BASE_PATH" default:"/api"`
	ReadTimeoutSeconds  int      `envconfig:"SERVER_READ_TIMEOUT" default:"15"`
	// Запись держится дольше таймаута AI клиента, иначе длинная генерация обрывается.
	WriteTimeoutSeconds int      `envconfig:"SERVER_WRITE_TIMEOUT" default:"330"`
	IdleTimeoutSeconds  int      `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`
	CORSAllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"bookcopy"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`

	// Настройки Redis (хранилище токенов)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Настройки JWT
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"60m"`
	RefreshTokenTTL time.Duration `envconfig:"JWT_REFRESH_TOKEN_TTL" default:"168h"` // 7 дней

	// Настройки AI API
	AIAPIKey         string        `envconfig:"AI_API_KEY" default:""`
	AIModel          string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AIBaseURL        string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AITimeout        time.Duration `envconfig:"AI_TIMEOUT" default:"300s"`
	AIMaxInputTokens int           `envconfig:"AI_MAX_INPUT_TOKENS" default:"8000"`

	// Лимиты загрузки рукописей
	MaxUploadSizeBytes int64 `envconfig:"MAX_UPLOAD_SIZE_BYTES" default:"26214400"` // 25 MiB

	// Переопределения параметров генерации по типам (AI_TEMPERATURE_<TYPE>, AI_MAX_TOKENS_<TYPE>).
	// Заполняются в Load отдельным проходом, envconfig их не обрабатывает.
	GenerationOverrides map[ai.GenerationType]ai.ParamsOverride `ignored:"true"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Load загружает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	cfg.GenerationOverrides = loadGenerationOverrides()

	return &cfg, nil
}

// loadGenerationOverrides читает переопределения температуры и лимита токенов
// для каждого типа генерации. Отсутствующие или невалидные значения молча
// пропускаются - остаются значения по умолчанию.
func loadGenerationOverrides() map[ai.GenerationType]ai.ParamsOverride {
	overrides := make(map[ai.GenerationType]ai.ParamsOverride)
	for _, gt := range ai.AllGenerationTypes {
		suffix := strings.ToUpper(gt.String())
		var ov ai.ParamsOverride

		if raw, ok := os.LookupEnv("AI_TEMPERATURE_" + suffix); ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				ov.Temperature = &v
			}
		}
		if raw, ok := os.LookupEnv("AI_MAX_TOKENS_" + suffix); ok {
			if v, err := strconv.Atoi(raw); err == nil {
				ov.MaxTokens = &v
			}
		}

		if ov.Temperature != nil || ov.MaxTokens != nil {
			overrides[gt] = ov
		}
	}
	return overrides
}
