package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config concentra toda la configuración del servicio, vía env vars.
// Los adapters externos son opcionales: si su bloque no está seteado,
// el router cae a los modos dev (repos in-memory, auth por header debug,
// export como descarga JSON).
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	AppName   string `env:"APP_NAME" envDefault:"car-collection"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Record store (Postgres). Vacío => in-memory.
	DBDSN string `env:"DB_DSN"`

	// Proveedor de identidad (GoTrue-compatible).
	AuthBaseURL     string `env:"AUTH_BASE_URL"`
	AuthJWTSecret   string `env:"AUTH_JWT_SECRET"`
	AuthRedirectURL string `env:"AUTH_REDIRECT_URL"`
	AuthProvider    string `env:"AUTH_PROVIDER" envDefault:"google"`

	// Blob store (MinIO / S3 compatible). Endpoint vacío => in-memory.
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"car-images"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	// Export target (API estilo GitHub contents). Token vacío => sin publisher.
	ExportAPIBaseURL string `env:"EXPORT_API_BASE_URL" envDefault:"https://api.github.com"`
	ExportToken      string `env:"EXPORT_TOKEN"`
	ExportRepo       string `env:"EXPORT_REPO"` // formato owner/name
	ExportBranch     string `env:"EXPORT_BRANCH" envDefault:"main"`
}

// Load parsea la configuración desde el entorno.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ExportToken != "" && !strings.Contains(cfg.ExportRepo, "/") {
		return Config{}, fmt.Errorf("EXPORT_REPO must be owner/name, got %q", cfg.ExportRepo)
	}

	return cfg, nil
}

// Addr devuelve la dirección de escucha HTTP.
func (c Config) Addr() string {
	return ":" + c.Port
}
