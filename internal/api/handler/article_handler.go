package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressify/articles-api/internal/api/metrics"
	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /api/articles.
//
// @Summary      List articles with pagination and filters
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int      false  "Page number (default 1)"
// @Param        limit       query     int      false  "Page size (default 10)"
// @Param        category    query     string   false  "Filter by category id"
// @Param        isFavorite  query     bool     false  "Filter by favorite flag"
// @Param        minRating   query     number   false  "Minimum rating (0-5)"
// @Success      200  {object}  listArticlesResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	var q listArticlesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	// Query validation funnels through the centralized error handler with
	// every field error collected, unlike the register/login body path.
	if err := c.Validate(&q); err != nil {
		return domain.Invalid("%s", err.Error())
	}

	result, err := h.service.List(c.Request().Context(), toListArticlesInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListArticlesResponse(result))
}

// Get handles GET /api/articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Create handles POST /api/articles.
//
// @Summary      Create a new article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article details"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Create(c.Request().Context(), toCreateArticleInput(req))
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(detail))
}

// Update handles PUT /api/articles/:id.
//
// @Summary      Partially update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  articleResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateArticleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Rate handles PATCH /api/articles/:id/rate.
//
// @Summary      Set an article's rating
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Article id"
// @Param        body  body      rateArticleRequest  true  "Rating (0-5)"
// @Success      200   {object}  articleResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /articles/{id}/rate [patch]
func (h *ArticleHandler) Rate(c echo.Context) error {
	var req rateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be a valid number")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Rate(c.Request().Context(), c.Param("id"), *req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// ToggleFavorite handles PATCH /api/articles/:id/favorite.
//
// @Summary      Toggle an article's favorite flag
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id}/favorite [patch]
func (h *ArticleHandler) ToggleFavorite(c echo.Context) error {
	detail, err := h.service.ToggleFavorite(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(detail))
}

// Delete handles DELETE /api/articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ArticlesDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListByCategory handles GET /api/articles/categories/:categoryId. The
// category is expanded to itself plus its direct children.
//
// @Summary      List articles in a category and its direct children
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        categoryId  path      string  true  "Category id"
// @Success      200  {array}   articleResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/categories/{categoryId} [get]
func (h *ArticleHandler) ListByCategory(c echo.Context) error {
	items, err := h.service.ListByCategory(c.Request().Context(), c.Param("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponses(items))
}
