package ports

import (
	"context"
	"time"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// ArticleBrief is the compact article view embedded in a user profile.
type ArticleBrief struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// UserProfile is the outbound view of the authenticated user. No password
// field exists on it.
type UserProfile struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
	Articles  []ArticleBrief
}

// UserService defines registration, login, and profile retrieval.
type UserService interface {
	// Register creates an account and returns a signed token.
	Register(ctx context.Context, input RegisterInput) (string, error)
	// Login verifies credentials and returns a signed token. Unknown email
	// and wrong password fail identically.
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID string) (*UserProfile, error)
}
