package models

import (
	"time"
)

// StatusActive is the wp_users.user_status value for a usable account.
const StatusActive = 0

// PlaceholderPasswordHash is stored for every imported user. It is not a
// valid phpass hash, so it can never match a submitted password; imported
// members must go through a password reset before their first login.
const PlaceholderPasswordHash = "!imported-locked"

// User mirrors one wp_users row. Login is the member's identifier (DNI, NIE
// or CIF) and the unique key of the store; it is never changed once the row
// exists.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Login        string    `json:"login" db:"user_login"`
	PasswordHash string    `json:"-" db:"user_pass"`
	Nicename     string    `json:"nicename" db:"user_nicename"`
	Email        string    `json:"email" db:"user_email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Status       int       `json:"status" db:"user_status"`
	RegisteredAt time.Time `json:"registered_at" db:"user_registered"`
}
