package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	assert.True(t, CheckPasswordHash("Password1", hash))
	assert.False(t, CheckPasswordHash("password1", hash))
	assert.False(t, CheckPasswordHash("", hash))
	assert.False(t, CheckPasswordHash("Password1", "not-a-hash"))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Password1")
	require.NoError(t, err)
	second, err := HashPassword("Password1")
	require.NoError(t, err)

	// bcrypt соль делает хеши уникальными
	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"ok", "Password1", true},
		{"ok with symbols", "Sup3r-Secret!", true},
		{"too short", "Pass1wo", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "PasswordX", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
