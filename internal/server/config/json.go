package config

import (
	"encoding/json"
	"os"

	"github.com/dsmirnovs/notekeeper/internal/flagx"
	"github.com/dsmirnovs/notekeeper/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. It uses timex.Duration
// for the token lifetime, which accepts both string values such as "24h"
// and integer nanoseconds.
type JsonConfig struct {
	Address               string          `json:"address"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
}

// parseJson overlays values from a JSON file onto config. The file path is
// taken from the -c/-config flags; when neither is given, nothing is loaded.
// A file that cannot be read or parsed is a startup error, so it panics.
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

	if c.Address != "" {
		config.Address = c.Address
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
}
