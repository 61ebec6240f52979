package logger

import (
	"strings"
)

// SanitizeQueryString checks if query string contains sensitive parameters
// and returns true if the entire query string should be redacted
func SanitizeQueryString(rawQuery string) bool {
	sensitiveParams := map[string]bool{
		"key":     true,
		"secret":  true,
		"token":   true,
		"api_key": true,
		"apikey":  true,
		"auth":    true,
	}

	query := strings.ToLower(rawQuery)
	for param := range sensitiveParams {
		if strings.Contains(query, param) {
			return true
		}
	}
	return false
}

// SanitizedIdentity truncates an over-long client identity before logging.
// Identities come from request headers and are attacker-controlled.
func SanitizedIdentity(identity string) string {
	const maxLen = 64
	if len(identity) > maxLen {
		return identity[:maxLen] + "..."
	}
	return identity
}
