package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists environment variables that must be set when running
// against postgres storage. The in-memory mode only needs the API key.
var RequiredEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv checks that all required environment variables are set.
func ValidateEnv() error {
	if os.Getenv("STORAGE") == StorageMemory {
		if os.Getenv("API_KEY") == "" {
			return fmt.Errorf("missing required environment variable: API_KEY")
		}
		return nil
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
