package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns a trimmed environment variable or the fallback.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}
