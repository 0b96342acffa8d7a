package handler

import "time"

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// validationErrorsResponse is returned directly by the register and login
// handlers when body validation fails, listing every violated rule.
type validationErrorsResponse struct {
	Errors []string `json:"errors"`
}

type articleBriefResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// profileResponse is the authenticated user's own view. It is built from
// fields that never include the password hash.
type profileResponse struct {
	ID        string                 `json:"id"`
	Username  string                 `json:"username"`
	Email     string                 `json:"email"`
	CreatedAt time.Time              `json:"createdAt"`
	Articles  []articleBriefResponse `json:"articles"`
}

// errorResponse documents the envelope produced by the centralized error
// handler; it exists here only for the generated API docs.
type errorResponse struct {
	Error string `json:"error"`
}
