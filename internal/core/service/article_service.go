package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ArticleService orchestrates article use cases: reference existence checks,
// rating bounds, pagination, and author/category joins. It holds no state
// beyond its injected dependencies.
type ArticleService struct {
	articles   ports.ArticleRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		users:      users,
		logger:     logger,
	}
}

// List returns one page of articles joined with category and author, plus
// pagination metadata. An empty page is a valid result.
func (s *ArticleService) List(ctx context.Context, input ports.ListArticlesInput) (*ports.ListArticlesResult, error) {
	page := input.Page
	if page == 0 {
		page = defaultPage
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if page < 1 {
		return nil, domain.Invalid("page must be greater than 0")
	}
	if limit < 1 {
		return nil, domain.Invalid("limit must be greater than 0")
	}
	if input.MinRating != nil && !domain.ValidRating(*input.MinRating) {
		return nil, domain.Invalid("minRating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	filter := ports.ListArticlesFilter{
		CategoryID: input.CategoryID,
		IsFavorite: input.IsFavorite,
		MinRating:  input.MinRating,
		Page:       page,
		Limit:      limit,
	}

	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.hydrate(ctx, articles)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListArticlesResult{
		Items: items,
		Pagination: ports.Pagination{
			Total:           total,
			Page:            page,
			Limit:           limit,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrateOne(ctx, article)
}

func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (*ports.ArticleDetail, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if title == "" {
		return nil, domain.Unprocessable("title is required")
	}
	if description == "" {
		return nil, domain.Unprocessable("description is required")
	}
	if input.CategoryID == "" {
		return nil, domain.Unprocessable("category id is required")
	}
	if input.AuthorID == "" {
		return nil, domain.Unprocessable("author id is required")
	}

	rating := float64(domain.MinRating)
	if input.Rating != nil {
		if !domain.ValidRating(*input.Rating) {
			return nil, domain.Unprocessable("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
		}
		rating = *input.Rating
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Rating:      rating,
		CategoryID:  category.ID,
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		s.logger.Error().Err(err).Msg("failed to create article")
		return nil, err
	}

	s.logger.Info().
		Str("article_id", article.ID).
		Str("category_id", category.ID).
		Str("author_id", author.ID).
		Msg("article created")

	return toDetail(article, category, author), nil
}

// Update applies a partial update; only non-nil fields change. Relationship
// fields are re-validated for existence when supplied.
func (s *ArticleService) Update(ctx context.Context, id string, input ports.UpdateArticleInput) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Rating != nil && !domain.ValidRating(*input.Rating) {
		return nil, domain.Unprocessable("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		article.CategoryID = *input.CategoryID
	}
	if input.AuthorID != nil {
		if _, err := s.users.FindByID(ctx, *input.AuthorID); err != nil {
			return nil, err
		}
		article.AuthorID = *input.AuthorID
	}
	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Rating != nil {
		article.Rating = *input.Rating
	}

	now := time.Now().UTC()
	upd := ports.ArticleUpdate{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		AuthorID:    input.AuthorID,
		Rating:      input.Rating,
		UpdatedAt:   now,
	}
	if err := s.articles.Update(ctx, id, upd); err != nil {
		return nil, err
	}

	article.UpdatedAt = now
	return s.hydrateOne(ctx, article)
}

func (s *ArticleService) Rate(ctx context.Context, id string, rating float64) (*ports.ArticleDetail, error) {
	if !domain.ValidRating(rating) {
		return nil, domain.Unprocessable("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.articles.SetRating(ctx, id, rating, now); err != nil {
		return nil, err
	}

	article.Rating = rating
	article.UpdatedAt = now
	return s.hydrateOne(ctx, article)
}

// ToggleFavorite flips the favorite flag. The read-then-write pair is not
// atomic; a concurrent delete surfaces as a store error, not a clean 404.
func (s *ArticleService) ToggleFavorite(ctx context.Context, id string) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flipped := !article.IsFavorite
	now := time.Now().UTC()
	if err := s.articles.SetFavorite(ctx, id, flipped, now); err != nil {
		return nil, err
	}

	article.IsFavorite = flipped
	article.UpdatedAt = now
	return s.hydrateOne(ctx, article)
}

func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("article_id", id).Msg("article deleted")
	return nil
}

// ListByCategory expands the category to itself plus its direct children
// (never grandchildren) and returns every article filed under that set.
func (s *ArticleService) ListByCategory(ctx context.Context, categoryID string) ([]ports.ArticleDetail, error) {
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

	ids := make([]string, 0, len(children)+1)
	ids = append(ids, categoryID)
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	articles, err := s.articles.FindByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, articles)
}

// hydrate joins a batch of articles with their categories and authors using
// two $in lookups instead of one round-trip per article.
func (s *ArticleService) hydrate(ctx context.Context, articles []*domain.Article) ([]ports.ArticleDetail, error) {
	if len(articles) == 0 {
		return []ports.ArticleDetail{}, nil
	}

	categoryIDs := make([]string, 0, len(articles))
	authorIDs := make([]string, 0, len(articles))
	seenCat := make(map[string]bool, len(articles))
	seenAuthor := make(map[string]bool, len(articles))
	for _, a := range articles {
		if !seenCat[a.CategoryID] {
			seenCat[a.CategoryID] = true
			categoryIDs = append(categoryIDs, a.CategoryID)
		}
		if !seenAuthor[a.AuthorID] {
			seenAuthor[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	categories, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	categoriesByID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}
	authorsByID := make(map[string]*domain.User, len(authors))
	for _, u := range authors {
		authorsByID[u.ID] = u
	}

	details := make([]ports.ArticleDetail, 0, len(articles))
	for _, a := range articles {
		details = append(details, *toDetail(a, categoriesByID[a.CategoryID], authorsByID[a.AuthorID]))
	}
	return details, nil
}

func (s *ArticleService) hydrateOne(ctx context.Context, article *domain.Article) (*ports.ArticleDetail, error) {
	category, err := s.categories.FindByID(ctx, article.CategoryID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, article.AuthorID)
	if err != nil {
		return nil, err
	}
	return toDetail(article, category, author), nil
}

// toDetail builds the outbound projection. The author view is constructed
// without a password field, so nothing sensitive can leak past this point.
func toDetail(a *domain.Article, category *domain.Category, author *domain.User) *ports.ArticleDetail {
	detail := &ports.ArticleDetail{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Rating:      a.Rating,
		IsFavorite:  a.IsFavorite,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if category != nil {
		detail.Category = ports.CategorySummary{
			ID:       category.ID,
			Name:     category.Name,
			ParentID: category.ParentID,
		}
	}
	if author != nil {
		detail.Author = ports.AuthorSummary{
			ID:        author.ID,
			Username:  author.Username,
			Email:     author.Email,
			CreatedAt: author.CreatedAt,
		}
	}
	return detail
}
