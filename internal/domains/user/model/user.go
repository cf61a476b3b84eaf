package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is an account allowed to sign in.
type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"-" db:"password"` // bcrypt hash, never expose
	Enabled   bool   `json:"enabled" db:"enabled"`
	Authority string `json:"authority" db:"authority"`
}

// LoginRequest is the submitted sign-in form.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrInvalidAuthority   = errors.New("invalid authority")
)
