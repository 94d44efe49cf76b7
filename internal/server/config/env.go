package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors the environment surface. A zero value means "not set";
// only set variables overlay the current Config.
type envConfig struct {
	EndpointAddr          string        `envconfig:"ENDPOINT_ADDR"`
	DatabaseDSN           string        `envconfig:"DATABASE_DSN"`
	SecretKey             string        `envconfig:"SECRET_KEY"`
	TokenValidityDuration time.Duration `envconfig:"TOKEN_VALIDITY_DURATION"`
	S3RootUser            string        `envconfig:"MINIO_ROOT_USER"`
	S3RootPassword        string        `envconfig:"MINIO_ROOT_PASSWORD"`
	S3Bucket              string        `envconfig:"S3_BUCKET"`
	S3Region              string        `envconfig:"S3_REGION"`
	S3BaseEndpoint        string        `envconfig:"S3_BASE_ENDPOINT"`
	S3Prefix              string        `envconfig:"S3_PREFIX"`
	BackupHour            int           `envconfig:"BACKUP_HOUR" default:"-1"`
	BackupTimeout         time.Duration `envconfig:"BACKUP_TIMEOUT"`
	GeminiAPIKey          string        `envconfig:"GEMINI_API_KEY"`
	GeminiEndpoint        string        `envconfig:"GEMINI_ENDPOINT"`
}

// parseEnv overlays values from the process environment, loading a local
// .env file first when present.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	var e envConfig
	if err := envconfig.Process("", &e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
	if e.S3Prefix != "" {
		config.S3Prefix = e.S3Prefix
	}
	if e.BackupHour >= 0 {
		config.BackupHour = e.BackupHour
	}
	if e.BackupTimeout != 0 {
		config.BackupTimeout = e.BackupTimeout
	}
	if e.GeminiAPIKey != "" {
		config.GeminiAPIKey = e.GeminiAPIKey
	}
	if e.GeminiEndpoint != "" {
		config.GeminiEndpoint = e.GeminiEndpoint
	}
}
