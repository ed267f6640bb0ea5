package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid simple", "alice", false},
		{"Valid with numbers", "alice42", false},
		{"Valid with underscore", "alice_b", false},
		{"Valid with hyphen", "alice-b", false},
		{"Too short", "ab", true},
		{"Too long", strings.Repeat("a", 21), true},
		{"Invalid characters", "alice!", true},
		{"Contains space", "alice b", true},
		{"Leading underscore", "_alice", true},
		{"Trailing hyphen", "alice-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+tag@sub.example.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))

	long := strings.Repeat("a", 250) + "@example.com"
	assert.Error(t, ValidateEmail(long))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("pw123456"))
	assert.NoError(t, ValidatePassword("correct horse battery staple"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidatePostDesc(t *testing.T) {
	assert.NoError(t, ValidatePostDesc(""))
	assert.NoError(t, ValidatePostDesc(strings.Repeat("a", 500)))
	assert.Error(t, ValidatePostDesc(strings.Repeat("a", 501)))
}
