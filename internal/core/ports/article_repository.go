package ports

import (
	"context"
	"time"

	"github.com/pressify/articles-api/internal/core/domain"
)

// ListArticlesFilter carries all query parameters for listing articles.
// Page is 1-based; offset arithmetic lives in the repository.
type ListArticlesFilter struct {
	CategoryID string   // optional: filter by category
	IsFavorite *bool    // optional: filter by favorite flag
	MinRating  *float64 // optional: rating >= MinRating
	Page       int
	Limit      int
}

// ArticleUpdate describes a partial update: only non-nil fields are written.
// UpdatedAt is supplied by the caller so the stored timestamp matches the one
// returned in the response.
type ArticleUpdate struct {
	Title       *string
	Description *string
	CategoryID  *string
	AuthorID    *string
	Rating      *float64
	UpdatedAt   time.Time
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) error
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// List returns one page of articles matching filter, newest first, plus
	// the total matching count.
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, int64, error)
	// FindByCategoryIDs returns all articles whose category is in ids.
	FindByCategoryIDs(ctx context.Context, ids []string) ([]*domain.Article, error)
	FindByAuthorID(ctx context.Context, authorID string) ([]*domain.Article, error)
	Update(ctx context.Context, id string, upd ArticleUpdate) error
	SetRating(ctx context.Context, id string, rating float64, at time.Time) error
	SetFavorite(ctx context.Context, id string, favorite bool, at time.Time) error
	Delete(ctx context.Context, id string) error
}
