package ports

import (
	"context"

	"github.com/pressify/articles-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	// FindTopLevel returns categories with no parent.
	FindTopLevel(ctx context.Context) ([]*domain.Category, error)
	// FindChildren returns the direct children of any of the given parents.
	FindChildren(ctx context.Context, parentIDs []string) ([]*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, id, name string, parentID *string) error
	Delete(ctx context.Context, id string) error
}
