package domain

import "time"

// User models a registered account. PasswordHash never crosses the API
// boundary: every outbound view of a user is built from a projection type
// that has no password field at all.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
