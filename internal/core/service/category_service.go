package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

// CategoryService orchestrates category use cases. Names are trimmed on both
// create and update and stored as given; uniqueness is case-sensitive.
type CategoryService struct {
	categories ports.CategoryRepository
	articles   ports.ArticleRepository
	logger     zerolog.Logger
}

func NewCategoryService(
	categories ports.CategoryRepository,
	articles ports.ArticleRepository,
	logger zerolog.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		articles:   articles,
		logger:     logger,
	}
}

// ListTopLevel returns all parentless categories with two levels of children
// eagerly attached (children and grandchildren).
func (s *CategoryService) ListTopLevel(ctx context.Context) ([]ports.CategoryNode, error) {
	top, err := s.categories.FindTopLevel(ctx)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return []ports.CategoryNode{}, nil
	}

	children, err := s.categories.FindChildren(ctx, idsOf(top))
	if err != nil {
		return nil, err
	}

	var grandchildren []*domain.Category
	if len(children) > 0 {
		grandchildren, err = s.categories.FindChildren(ctx, idsOf(children))
		if err != nil {
			return nil, err
		}
	}

	grandByParent := groupByParent(grandchildren)
	childByParent := groupByParent(children)

	nodes := make([]ports.CategoryNode, 0, len(top))
	for _, c := range top {
		node := toNode(c)
		for _, child := range childByParent[c.ID] {
			childNode := toNode(child)
			for _, grand := range grandByParent[child.ID] {
				childNode.Children = append(childNode.Children, toNode(grand))
			}
			node.Children = append(node.Children, childNode)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Get returns the category with its immediate children only.
func (s *CategoryService) Get(ctx context.Context, id string) (*ports.CategoryNode, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.categories.FindChildren(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	node := toNode(category)
	for _, child := range children {
		node.Children = append(node.Children, toNode(child))
	}
	return &node, nil
}

func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*ports.CategoryNode, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Unprocessable("name is required")
	}

	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("category with the name %q already exists", name)
	}

	if input.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *input.ParentID); err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, domain.Unprocessable("parent category with id %q does not exist", *input.ParentID)
			}
			return nil, err
		}
	}

	category := &domain.Category{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: input.ParentID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Str("name", name).Msg("category created")

	node := toNode(category)
	return &node, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) (*ports.CategoryNode, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.Unprocessable("name is required")
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *input.ParentID); err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, domain.Unprocessable("parent category with id %q does not exist", *input.ParentID)
			}
			return nil, err
		}
	}

	if err := s.categories.Update(ctx, id, name, input.ParentID); err != nil {
		return nil, err
	}

	category.Name = name
	category.ParentID = input.ParentID
	node := toNode(category)
	return &node, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

// ListArticles checks category existence first, then returns all articles
// filed under the category or its direct children. No author join is
// performed on this path.
func (s *CategoryService) ListArticles(ctx context.Context, categoryID string) ([]ports.ArticleRecord, error) {
	if categoryID == "" {
		return nil, domain.Invalid("category id is required")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	children, err := s.categories.FindChildren(ctx, []string{categoryID})
	if err != nil {
		return nil, err
	}

	ids := append([]string{categoryID}, idsOf(children)...)
	articles, err := s.articles.FindByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]ports.ArticleRecord, 0, len(articles))
	for _, a := range articles {
		records = append(records, ports.ArticleRecord{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Rating:      a.Rating,
			IsFavorite:  a.IsFavorite,
			CategoryID:  a.CategoryID,
			AuthorID:    a.AuthorID,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		})
	}
	return records, nil
}

func toNode(c *domain.Category) ports.CategoryNode {
	return ports.CategoryNode{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: c.ParentID,
	}
}

func idsOf(categories []*domain.Category) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func groupByParent(categories []*domain.Category) map[string][]*domain.Category {
	grouped := make(map[string][]*domain.Category, len(categories))
	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		grouped[*c.ParentID] = append(grouped[*c.ParentID], c)
	}
	return grouped
}
