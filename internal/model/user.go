package model

import "time"

// User mirrors the users table. PasswordHash never leaves the server.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserEmail is one of the addresses a user applies with.  At most one per
// user carries IsPrimary; the repository enforces that by re-assignment
// inside a transaction.
type UserEmail struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Email     string    `json:"email"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}
