package auth

import (
	"time"
)

// JWTConfig holds token signing configuration
type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
}

// Config holds authentication configuration
type Config struct {
	JWT JWTConfig
}

// DefaultConfig returns the baseline auth configuration; secrets are
// overridden from the environment by the container.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			Issuer:          "maprecruit-platform",
		},
	}
}
