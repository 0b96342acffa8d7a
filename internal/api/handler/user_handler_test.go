package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressify/articles-api/internal/api/middleware"
	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn  func(ctx context.Context, userID string) (*ports.UserProfile, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*ports.UserProfile, error) {
	return s.profileFn(ctx, userID)
}

func newUserHandler(stub *stubUserService) (*echo.Echo, *UserHandler) {
	e := echo.New()
	v := NewValidator()
	e.Validator = v
	return e, NewUserHandler(stub, v)
}

func TestUserHandler_Register_Success(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (string, error) {
			if input.Email != "alice@example.com" || input.Username != "alice" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token123", nil
		},
	})

	body := `{"email":"alice@example.com","username":"alice","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestUserHandler_Register_ValidationErrorList(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	})

	// Bad email, username too short, password without uppercase or digit.
	body := `{"email":"not-an-email","username":"ab","password":"weakpass"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp validationErrorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("expected 3 violations, got %v", resp.Errors)
	}
}

func TestUserHandler_Register_DuplicatePropagates(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (string, error) {
			return "", domain.Invalid("a user with this email or username already exists")
		},
	})

	body := `{"email":"alice@example.com","username":"alice","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("expected invalid error to propagate, got %v", err)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		loginFn: func(_ context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "Sup3rSecret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	})

	body := `{"email":"alice@example.com","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestUserHandler_Login_MissingFields(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		loginFn: func(context.Context, string, string) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp validationErrorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 violations, got %v", resp.Errors)
	}
}

func TestUserHandler_Login_ThrottledPropagates(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.TooManyRequests("too many login attempts, try again later")
		},
	})

	body := `{"email":"alice@example.com","password":"whatever"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); domain.KindOf(err) != domain.KindTooManyRequests {
		t.Fatalf("expected throttle error to propagate, got %v", err)
	}
}

func TestUserHandler_Me_Success(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		profileFn: func(_ context.Context, userID string) (*ports.UserProfile, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &ports.UserProfile{
				ID:        "user-1",
				Username:  "alice",
				Email:     "alice@example.com",
				CreatedAt: time.Now().UTC(),
				Articles:  []ports.ArticleBrief{{ID: "a-1", Title: "First"}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.UserIDKey, "user-1")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in profile payload")
	}
	articles, ok := resp["articles"].([]any)
	if !ok || len(articles) != 1 {
		t.Fatalf("expected one article brief, got %v", resp["articles"])
	}
}

func TestUserHandler_Me_MissingClaims(t *testing.T) {
	e, h := newUserHandler(&stubUserService{
		profileFn: func(context.Context, string) (*ports.UserProfile, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
