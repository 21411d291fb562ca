package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// RegistrationConfig tunes the registration flow.
type RegistrationConfig struct {
	// LoginURL is where clients are sent after a successful registration.
	LoginURL string `koanf:"login_url"`

	// BcryptCost is the work factor used to hash new passwords.
	BcryptCost int `koanf:"bcrypt_cost"`

	// WelcomeEmail enqueues a welcome e-mail job after each registration.
	WelcomeEmail bool `koanf:"welcome_email"`
}

// DefaultRegistrationConfig is used when no registration block is configured.
func DefaultRegistrationConfig() *RegistrationConfig {
	return &RegistrationConfig{
		LoginURL:     "/login",
		BcryptCost:   bcrypt.DefaultCost,
		WelcomeEmail: true,
	}
}

// Validate checks values the zero value cannot express safely.
func (c *RegistrationConfig) Validate() error {
	if c.LoginURL == "" {
		return fmt.Errorf("login_url is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
