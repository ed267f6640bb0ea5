package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:       "8080",
		Env:        "development",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production with strong settings", func(c *Config) {
			c.Env = "production"
		}, false},
		{"Development with short JWT secret", func(c *Config) {
			c.JWTSecret = "short"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TokenTTL(t *testing.T) {
	c := &Config{JWTExpireHours: 24}
	assert.Equal(t, 24*time.Hour, c.TokenTTL())

	// zero falls back to one week
	c = &Config{}
	assert.Equal(t, 7*24*time.Hour, c.TokenTTL())
}

func TestConfig_StoreTimeout(t *testing.T) {
	c := &Config{StoreTimeoutMS: 250}
	assert.Equal(t, 250*time.Millisecond, c.StoreTimeout())

	c = &Config{}
	assert.Equal(t, 5*time.Second, c.StoreTimeout())
}
