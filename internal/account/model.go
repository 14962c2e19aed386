package account

import "time"

// Account represents a registered bookkeeping user.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials request structure.
type Credentials struct {
	Email    string
	Password string
}
