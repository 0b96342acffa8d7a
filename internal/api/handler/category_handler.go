package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressify/articles-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /api/categories — top-level categories with two levels of
// children.
//
// @Summary      List top-level categories with subcategories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   categoryResponse
// @Failure      401  {object}  errorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	nodes, err := h.service.ListTopLevel(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponses(nodes))
}

// Get handles GET /api/categories/:id — the category with immediate children.
//
// @Summary      Get a category by id
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	node, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(*node))
}

// Create handles POST /api/categories.
//
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category details"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	node, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(*node))
}

// Update handles PUT /api/categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category id"
// @Param        body  body      updateCategoryRequest  true  "Category details"
// @Success      200   {object}  categoryResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	node, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCategoryResponse(*node))
}

// Delete handles DELETE /api/categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListArticles handles GET /api/categories/:id/articles — articles in the
// category or its direct children, no author join.
//
// @Summary      List articles for a category and its direct children
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {array}   categoryArticleResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id}/articles [get]
func (h *CategoryHandler) ListArticles(c echo.Context) error {
	records, err := h.service.ListArticles(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]categoryArticleResponse, 0, len(records))
	for _, r := range records {
		out = append(out, categoryArticleResponse{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Rating:      r.Rating,
			IsFavorite:  r.IsFavorite,
			CategoryID:  r.CategoryID,
			AuthorID:    r.AuthorID,
			CreatedAt:   r.CreatedAt.UTC(),
			UpdatedAt:   r.UpdatedAt.UTC(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func toCategoryResponse(node ports.CategoryNode) categoryResponse {
	resp := categoryResponse{
		ID:       node.ID,
		Name:     node.Name,
		ParentID: node.ParentID,
		Children: []categoryResponse{},
	}
	for _, child := range node.Children {
		resp.Children = append(resp.Children, toCategoryResponse(child))
	}
	return resp
}

func toCategoryResponses(nodes []ports.CategoryNode) []categoryResponse {
	out := make([]categoryResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toCategoryResponse(n))
	}
	return out
}
