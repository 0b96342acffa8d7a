package ports

import (
	"context"
	"time"
)

// CreateArticleInput carries all data needed to create a new article.
// Rating is optional; when nil the article starts unrated (0).
type CreateArticleInput struct {
	Title       string
	Description string
	CategoryID  string
	AuthorID    string
	Rating      *float64
}

// UpdateArticleInput is a partial update: only non-nil fields change.
type UpdateArticleInput struct {
	Title       *string
	Description *string
	CategoryID  *string
	AuthorID    *string
	Rating      *float64
}

// ListArticlesInput carries all parameters for the list endpoint.
// Zero Page/Limit mean "use defaults" (1 and 10).
type ListArticlesInput struct {
	Page       int
	Limit      int
	CategoryID string
	IsFavorite *bool
	MinRating  *float64
}

// AuthorSummary is the outbound view of an article's author. It is built
// without a password field so redaction can never be forgotten downstream.
type AuthorSummary struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}

// CategorySummary is the outbound view of an article's category.
type CategorySummary struct {
	ID       string
	Name     string
	ParentID *string
}

// ArticleDetail is the full article view joined with category and author.
type ArticleDetail struct {
	ID          string
	Title       string
	Description string
	Rating      float64
	IsFavorite  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Category    CategorySummary
	Author      AuthorSummary
}

// Pagination is the derived metadata returned alongside a list page.
type Pagination struct {
	Total           int64
	Page            int
	Limit           int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// ListArticlesResult is returned by List. Items may be empty; an empty page
// is a valid result, not an error.
type ListArticlesResult struct {
	Items      []ArticleDetail
	Pagination Pagination
}

// ArticleService defines use-case operations for articles.
type ArticleService interface {
	List(ctx context.Context, input ListArticlesInput) (*ListArticlesResult, error)
	Get(ctx context.Context, id string) (*ArticleDetail, error)
	Create(ctx context.Context, input CreateArticleInput) (*ArticleDetail, error)
	Update(ctx context.Context, id string, input UpdateArticleInput) (*ArticleDetail, error)
	Rate(ctx context.Context, id string, rating float64) (*ArticleDetail, error)
	ToggleFavorite(ctx context.Context, id string) (*ArticleDetail, error)
	Delete(ctx context.Context, id string) error
	// ListByCategory returns articles filed under the category or any of its
	// direct children (one level only), joined with category and author.
	ListByCategory(ctx context.Context, categoryID string) ([]ArticleDetail, error)
}
