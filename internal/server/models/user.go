package models

import "time"

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext. Email is unique and compared case-sensitively.
type User struct {
	Email     string
	Password  string
	CreatedAt time.Time
}

// SlimUser is the authenticated principal handed to downstream code.
type SlimUser struct {
	Email string `json:"email"`
}

// Slim projects the user to its identity.
func (u *User) Slim() *SlimUser {
	return &SlimUser{Email: u.Email}
}
