package models

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role with a special meaning; regular users have no role.
const RoleAdmin = "admin"

// User maps a row of the 'users' table.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Plan         Plan   `json:"plan" db:"user_plan"`
	UsageCount   int    `json:"usage" db:"usage_count"`

	// LastUsed is the calendar date (DateLayout) of the last gated call.
	LastUsed sql.NullString `json:"-" db:"last_used"`
	Role     sql.NullString `json:"-" db:"role"`

	// Password recovery
	ResetToken       sql.NullString `json:"-" db:"reset_token"`
	ResetTokenExpiry sql.NullTime   `json:"-" db:"reset_token_expiry"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RoleName returns the role or "" for regular users.
func (u *User) RoleName() string {
	if !u.Role.Valid {
		return ""
	}
	return u.Role.String
}

func (u *User) IsAdmin() bool {
	return u.RoleName() == RoleAdmin
}

// UsedOn reports whether the stored counter belongs to the given day.
func (u *User) UsedOn(day string) bool {
	return u.LastUsed.Valid && u.LastUsed.String == day
}

// Password Helper (Standard)
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
