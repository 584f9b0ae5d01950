package model

import (
	"time"
)

// User is a stored account. The password hash never leaves the service
// layer; the API only ever sees PublicUser.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// PublicUser is the identity exposed in auth responses and session tokens.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email}
}

// AuthResponse is the payload of /api/auth/check, login and signup.
type AuthResponse struct {
	IsAuth bool        `json:"is_auth"`
	User   *PublicUser `json:"user,omitempty"`
}
