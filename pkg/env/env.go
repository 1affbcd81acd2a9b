package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// Real configuration lives in pkg/config; this covers the few knobs needed
// before config is loaded.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
