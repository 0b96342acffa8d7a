package handler

import "time"

type createCategoryRequest struct {
	Name     string  `json:"name"     validate:"required"`
	ParentID *string `json:"parentId"`
}

type updateCategoryRequest struct {
	Name     string  `json:"name"     validate:"required"`
	ParentID *string `json:"parentId"`
}

// categoryResponse carries a category and its eagerly-loaded children: two
// levels for the top-level listing, one for a single-category fetch.
type categoryResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	ParentID *string            `json:"parentId"`
	Children []categoryResponse `json:"children"`
}

// categoryArticleResponse is the flat article view used by the category
// article listing; it carries raw foreign keys instead of joined objects.
type categoryArticleResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	IsFavorite  bool      `json:"isFavorite"`
	CategoryID  string    `json:"categoryId"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
