package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressify/articles-api/internal/api/metrics"
	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

// UserHandler handles registration, login, and the profile endpoint. It keeps
// its own reference to the validator because the auth endpoints answer
// validation failures directly with the full error list instead of going
// through the centralized error handler.
type UserHandler struct {
	service   ports.UserService
	validator *echoValidator
}

func NewUserHandler(service ports.UserService, validator *echoValidator) *UserHandler {
	return &UserHandler{service: service, validator: validator}
}

// Register handles POST /api/users/register.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  validationErrorsResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if msgs := h.validator.Violations(&req); len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, validationErrorsResponse{Errors: msgs})
	}

	token, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login handles POST /api/users/login.
//
// @Summary      Log in with email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  validationErrorsResponse
// @Failure      429   {object}  errorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if msgs := h.validator.Violations(&req); len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, validationErrorsResponse{Errors: msgs})
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindTooManyRequests:
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me handles GET /api/users/me — the authenticated user's profile with their
// articles.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(p *ports.UserProfile) profileResponse {
	articles := make([]articleBriefResponse, 0, len(p.Articles))
	for _, a := range p.Articles {
		articles = append(articles, articleBriefResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CreatedAt:   a.CreatedAt.UTC(),
		})
	}
	return profileResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt.UTC(),
		Articles:  articles,
	}
}
