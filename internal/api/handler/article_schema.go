package handler

import "time"

// --- Request types ---

// listArticlesQuery is bound from the query string of GET /articles.
// Validation collects all field errors, not just the first. Page and Limit
// are pointers so an explicit 0 is rejected rather than mistaken for an
// absent parameter.
type listArticlesQuery struct {
	Page       *int     `query:"page"       validate:"omitempty,min=1"`
	Limit      *int     `query:"limit"      validate:"omitempty,min=1"`
	Category   string   `query:"category"`
	IsFavorite *bool    `query:"isFavorite"`
	MinRating  *float64 `query:"minRating"  validate:"omitempty,gte=0,lte=5"`
}

type createArticleRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	CategoryID  string   `json:"categoryId"  validate:"required"`
	AuthorID    string   `json:"authorId"    validate:"required"`
	Rating      *float64 `json:"rating"      validate:"omitempty,gte=0,lte=5"`
}

// updateArticleRequest is a partial update; absent fields stay untouched.
type updateArticleRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
	AuthorID    *string  `json:"authorId"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

type rateArticleRequest struct {
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=5"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes. authorResponse has no password field.

type authorResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type categoryRefResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

type articleResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Rating      float64             `json:"rating"`
	IsFavorite  bool                `json:"isFavorite"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Category    categoryRefResponse `json:"category"`
	Author      authorResponse      `json:"author"`
}

type paginationResponse struct {
	Total           int64 `json:"total"`
	Page            int   `json:"page"`
	Limit           int   `json:"limit"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type listArticlesResponse struct {
	Data       []articleResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
