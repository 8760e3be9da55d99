package errors

import (
	"regexp"
	"strings"
)

// usernamePattern follows GitHub's login rules: alphanumeric characters and
// single hyphens, not starting or ending with a hyphen, at most 39 characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// ValidateUsername validates a GitHub login before it is used in API paths
// and cache keys.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUsername, "username cannot be empty")
	}
	if len(name) > 39 {
		return New(ErrCodeInvalidUsername, "username too long (max 39 characters)")
	}
	if !usernamePattern.MatchString(name) {
		return New(ErrCodeInvalidUsername, "username %q contains invalid characters", name)
	}
	return nil
}

// ValidateThemeName validates a theme identifier from configuration.
// Request-supplied theme names are never rejected; unknown names fall back
// to the default theme.
func ValidateThemeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return New(ErrCodeInvalidTheme, "theme name %q must be lowercase alphanumeric", name)
		}
	}
	return nil
}
