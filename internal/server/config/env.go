package config

import "os"

// parseEnv overlays Config fields from environment variables. Environment
// values win over defaults, JSON and flags, which keeps containerized
// deployments simple.
//
// Recognized variables:
//
//	ENDPOINT_ADDR  HTTP bind address
//	DATABASE_URL   PostgreSQL DSN
//	API_TOKEN      shared secret for the x-api-key header
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ENDPOINT_ADDR"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("API_TOKEN"); ok {
		config.APIToken = v
	}
}
