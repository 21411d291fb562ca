// Package model holds the records persisted by the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account created through the registration form.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
