package domain

import "time"

type User struct {
	ID             int64
	Identification string // external identification, unique
	Email          string // unique, lowercased
	FullName       string
	PasswordHash   string // argon2 encoded, never the raw password
	Active         bool
	RoleID         int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserSummary is what login and profile responses expose about a user.
type UserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
