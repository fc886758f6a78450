package domain

import "time"

// Identity is what the client knows about the signed-in user, read from the
// bearer token payload. Token is kept so callers can attach it to requests.
type Identity struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
