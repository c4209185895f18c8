package env

import (
	"os"
	"strings"
)

// First returns the first non-empty value among keys, or the fallback. Values are
// trimmed and compared case-insensitively by callers, so they are lowercased here.
func First(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return strings.ToLower(val)
		}
	}
	return fallback
}
