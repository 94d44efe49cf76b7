package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/flagx"
	"github.com/Samayank/Renal-Tumor-Detection/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "168h" and integer nanoseconds.
// After unmarshalling, set fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3Prefix              string         `json:"s3_prefix"`
	BackupHour            *int           `json:"backup_hour"`
	BackupTimeout         timex.Duration `json:"backup_timeout"`
	GeminiAPIKey          string         `json:"gemini_api_key"`
	GeminiEndpoint        string         `json:"gemini_endpoint"`
	Roster                []RosterEntry  `json:"roster"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config command-line flag. No flag, no file. A file that cannot be
// read or parsed is a startup failure.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3Prefix != "" {
		config.S3Prefix = c.S3Prefix
	}
	if c.BackupHour != nil {
		config.BackupHour = *c.BackupHour
	}
	if c.BackupTimeout.Duration != 0 {
		config.BackupTimeout = time.Duration(c.BackupTimeout.Duration)
	}
	if c.GeminiAPIKey != "" {
		config.GeminiAPIKey = c.GeminiAPIKey
	}
	if c.GeminiEndpoint != "" {
		config.GeminiEndpoint = c.GeminiEndpoint
	}
	if len(c.Roster) > 0 {
		config.Roster = c.Roster
	}
}
