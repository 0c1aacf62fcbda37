package domain

import (
	"errors"
	"time"
)

// Built-in role names seeded on first run.
const (
	RoleAdmin        = "ADMIN"
	RoleEventManager = "EVENT_MANAGER"
	RoleVolunteer    = "VOLUNTEER"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLocked         = errors.New("account locked")
)

// User models an account holder. Roles are stored by name only; the
// effective permission set is always resolved against the role store at
// request time so that permission edits apply to tokens already issued.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
