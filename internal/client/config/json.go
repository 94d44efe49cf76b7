package config

import (
	"encoding/json"
	"os"

	"github.com/Samayank/Renal-Tumor-Detection/internal/flagx"
)

// JsonConfig is the DTO for the optional JSON configuration file.
type JsonConfig struct {
	ServerAddr string `json:"server_addr"`
}

// parseJson loads configuration values from the JSON file named by the -c
// or -config command-line flag. No flag, no file.
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

	if c.ServerAddr != "" {
		config.ServerAddr = c.ServerAddr
	}
}
