package ports

import (
	"context"
	"time"
)

// CategoryNode is a category together with its eagerly-loaded children.
// ListTopLevel fills two levels of Children; Get fills one.
type CategoryNode struct {
	ID       string
	Name     string
	ParentID *string
	Children []CategoryNode
}

// CreateCategoryInput carries the data for a new category.
type CreateCategoryInput struct {
	Name     string
	ParentID *string
}

// UpdateCategoryInput carries the data for a category update. Name is
// required; ParentID is re-validated for existence when non-nil.
type UpdateCategoryInput struct {
	Name     string
	ParentID *string
}

// ArticleRecord is the flat article view used by the category article
// listing, which performs no author join.
type ArticleRecord struct {
	ID          string
	Title       string
	Description string
	Rating      float64
	IsFavorite  bool
	CategoryID  string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	ListTopLevel(ctx context.Context) ([]CategoryNode, error)
	Get(ctx context.Context, id string) (*CategoryNode, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryNode, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*CategoryNode, error)
	Delete(ctx context.Context, id string) error
	// ListArticles returns the articles filed under the category or its
	// direct children. The category itself must exist.
	ListArticles(ctx context.Context, categoryID string) ([]ArticleRecord, error)
}
