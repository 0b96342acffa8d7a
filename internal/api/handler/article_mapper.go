package handler

import (
	"github.com/pressify/articles-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateArticleInput(req createArticleRequest) ports.CreateArticleInput {
	return ports.CreateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AuthorID:    req.AuthorID,
		Rating:      req.Rating,
	}
}

func toUpdateArticleInput(req updateArticleRequest) ports.UpdateArticleInput {
	return ports.UpdateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AuthorID:    req.AuthorID,
		Rating:      req.Rating,
	}
}

func toListArticlesInput(q listArticlesQuery) ports.ListArticlesInput {
	in := ports.ListArticlesInput{
		CategoryID: q.Category,
		IsFavorite: q.IsFavorite,
		MinRating:  q.MinRating,
	}
	if q.Page != nil {
		in.Page = *q.Page
	}
	if q.Limit != nil {
		in.Limit = *q.Limit
	}
	return in
}

// --- Service result → HTTP response ---

func toArticleResponse(d *ports.ArticleDetail) articleResponse {
	return articleResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Rating:      d.Rating,
		IsFavorite:  d.IsFavorite,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		Category: categoryRefResponse{
			ID:       d.Category.ID,
			Name:     d.Category.Name,
			ParentID: d.Category.ParentID,
		},
		Author: authorResponse{
			ID:        d.Author.ID,
			Username:  d.Author.Username,
			Email:     d.Author.Email,
			CreatedAt: d.Author.CreatedAt.UTC(),
		},
	}
}

func toArticleResponses(items []ports.ArticleDetail) []articleResponse {
	out := make([]articleResponse, 0, len(items))
	for i := range items {
		out = append(out, toArticleResponse(&items[i]))
	}
	return out
}

func toListArticlesResponse(r *ports.ListArticlesResult) listArticlesResponse {
	return listArticlesResponse{
		Data: toArticleResponses(r.Items),
		Pagination: paginationResponse{
			Total:           r.Pagination.Total,
			Page:            r.Pagination.Page,
			Limit:           r.Pagination.Limit,
			TotalPages:      r.Pagination.TotalPages,
			HasNextPage:     r.Pagination.HasNextPage,
			HasPreviousPage: r.Pagination.HasPreviousPage,
		},
	}
}
