package config

import "os"

// parseEnv overlays values from environment variables onto config.
//
// Supported variables:
//
//	ADDRESS       HTTP bind address
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    token signing secret
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.Address = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
}
