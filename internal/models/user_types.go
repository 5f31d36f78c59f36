package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the model for the 'users' table.
type User struct {
	UserID         int64     `json:"userId" db:"user_id"`
	Email          string    `json:"email" db:"email"`
	Name           string    `json:"name" db:"name"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	DateCreatedUtc time.Time `json:"dateCreatedUtc" db:"date_created_utc"`
}

// UserContext is the identity attached to a request.
// Storage scopes every query to UserID when one is present.
type UserContext struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// Password wraps bcrypt hashing of a plaintext password.
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
