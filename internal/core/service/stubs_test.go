package service

import (
	"context"
	"strings"
	"time"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They reproduce the
// error tagging of the real repositories: missing ids surface as
// domain.NotFound, duplicate keys as domain.Conflict.

type stubArticleRepo struct {
	articles []*domain.Article
	listErr  error
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) error {
	r.articles = append(r.articles, cloneArticle(a))
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	for _, a := range r.articles {
		if a.ID == id {
			return cloneArticle(a), nil
		}
	}
	return nil, domain.NotFound("article with id %q not found", id)
}

func (r *stubArticleRepo) List(_ context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	matched := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if filter.CategoryID != "" && a.CategoryID != filter.CategoryID {
			continue
		}
		if filter.IsFavorite != nil && a.IsFavorite != *filter.IsFavorite {
			continue
		}
		if filter.MinRating != nil && a.Rating < *filter.MinRating {
			continue
		}
		matched = append(matched, cloneArticle(a))
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubArticleRepo) FindByCategoryIDs(_ context.Context, ids []string) ([]*domain.Article, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*domain.Article
	for _, a := range r.articles {
		if wanted[a.CategoryID] {
			out = append(out, cloneArticle(a))
		}
	}
	return out, nil
}

func (r *stubArticleRepo) FindByAuthorID(_ context.Context, authorID string) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if a.AuthorID == authorID {
			out = append(out, cloneArticle(a))
		}
	}
	return out, nil
}

func (r *stubArticleRepo) Update(_ context.Context, id string, upd ports.ArticleUpdate) error {
	for _, a := range r.articles {
		if a.ID != id {
			continue
		}
		if upd.Title != nil {
			a.Title = *upd.Title
		}
		if upd.Description != nil {
			a.Description = *upd.Description
		}
		if upd.CategoryID != nil {
			a.CategoryID = *upd.CategoryID
		}
		if upd.AuthorID != nil {
			a.AuthorID = *upd.AuthorID
		}
		if upd.Rating != nil {
			a.Rating = *upd.Rating
		}
		a.UpdatedAt = upd.UpdatedAt
		return nil
	}
	return domain.NotFound("article with id %q not found", id)
}

func (r *stubArticleRepo) SetRating(_ context.Context, id string, rating float64, at time.Time) error {
	for _, a := range r.articles {
		if a.ID == id {
			a.Rating = rating
			a.UpdatedAt = at
			return nil
		}
	}
	return domain.NotFound("article with id %q not found", id)
}

func (r *stubArticleRepo) SetFavorite(_ context.Context, id string, favorite bool, at time.Time) error {
	for _, a := range r.articles {
		if a.ID == id {
			a.IsFavorite = favorite
			a.UpdatedAt = at
			return nil
		}
	}
	return domain.NotFound("article with id %q not found", id)
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.articles {
		if a.ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("article with id %q not found", id)
}

type stubCategoryRepo struct {
	categories []*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{}
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return domain.Conflict("category with the name %q already exists", c.Name)
		}
	}
	r.categories = append(r.categories, cloneCategory(c))
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return cloneCategory(c), nil
		}
	}
	return nil, domain.NotFound("category with id %q not found", id)
}

func (r *stubCategoryRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Category, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*domain.Category
	for _, c := range r.categories {
		if wanted[c.ID] {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindTopLevel(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		if c.ParentID == nil {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindChildren(_ context.Context, parentIDs []string) ([]*domain.Category, error) {
	wanted := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}
	var out []*domain.Category
	for _, c := range r.categories {
		if c.ParentID != nil && wanted[*c.ParentID] {
			out = append(out, cloneCategory(c))
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id, name string, parentID *string) error {
	for _, c := range r.categories {
		if c.ID == id {
			c.Name = name
			c.ParentID = parentID
			return nil
		}
	}
	return domain.NotFound("category with id %q not found", id)
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("category with id %q not found", id)
}

type stubUserRepo struct {
	users []*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return domain.Conflict("user already exists")
		}
	}
	r.users = append(r.users, cloneUser(user))
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NotFound("user not found")
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NotFound("user with id %q not found", id)
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*domain.User
	for _, u := range r.users {
		if wanted[u.ID] {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// stubThrottle counts failures in memory with the same 10-failure cutoff as
// the Redis implementation.
type stubThrottle struct {
	failures map[string]int
	max      int
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: 10}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	return t.failures[strings.ToLower(email)] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[strings.ToLower(email)]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, strings.ToLower(email))
	return nil
}
