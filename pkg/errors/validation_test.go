package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "octocat", false},
		{"with hyphen", "mona-lisa", false},
		{"digits", "user123", false},
		{"single char", "a", false},
		{"max length", strings.Repeat("a", 39), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 40), true},
		{"leading hyphen", "-octo", true},
		{"trailing hyphen", "octo-", true},
		{"double hyphen", "octo--cat", true},
		{"path traversal", "../etc", true},
		{"slash", "octo/cat", true},
		{"space", "octo cat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidUsername, GetCode(err))
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	for _, name := range []string{"orange", "dark-blue", "theme_2"} {
		assert.NoError(t, ValidateThemeName(name), name)
	}

	for _, name := range []string{"", "  ", "Orange", "my theme", "a/b"} {
		assert.True(t, Is(ValidateThemeName(name), ErrCodeInvalidTheme), "ValidateThemeName(%q) should be INVALID_THEME", name)
	}
}
