package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

func newUserFixture() (*UserService, *stubUserRepo, *stubArticleRepo, *stubThrottle) {
	users := newStubUserRepo()
	articles := newStubArticleRepo()
	throttle := newStubThrottle()
	svc := NewUserService(users, articles, throttle, "test-secret", time.Hour, zerolog.Nop())
	return svc, users, articles, throttle
}

func registerUser(t *testing.T, svc *UserService) string {
	t.Helper()
	token, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return token
}

func subjectOf(t *testing.T, token, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func TestUserService_Register_HashesPasswordAndSignsToken(t *testing.T) {
	svc, users, _, _ := newUserFixture()

	token := registerUser(t, svc)
	if subjectOf(t, token, "test-secret") == "" {
		t.Fatalf("expected token subject")
	}

	stored := users.users[0]
	if stored.PasswordHash == "Sup3rSecret" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Sup3rSecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newUserFixture()
	registerUser(t, svc)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Username: "other",
		Password: "An0therPass",
	})
	if domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("expected invalid error for duplicate email, got %v", err)
	}

	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Email:    "other@example.com",
		Username: "alice",
		Password: "An0therPass",
	})
	if domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("expected invalid error for duplicate username, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	svc, users, _, _ := newUserFixture()
	registerUser(t, svc)

	token, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if subjectOf(t, token, "test-secret") != users.users[0].ID {
		t.Fatalf("token subject does not match user id")
	}
}

func TestUserService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _, _ := newUserFixture()
	registerUser(t, svc)

	_, errWrongPass := svc.Login(context.Background(), "alice@example.com", "nope")
	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "nope")

	if domain.KindOf(errWrongPass) != domain.KindInvalid || domain.KindOf(errUnknown) != domain.KindInvalid {
		t.Fatalf("expected invalid errors, got %v and %v", errWrongPass, errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("credential errors must be indistinguishable: %q vs %q", errWrongPass, errUnknown)
	}
}

func TestUserService_Login_ThrottleTripsAfterRepeatedFailures(t *testing.T) {
	svc, _, _, throttle := newUserFixture()
	registerUser(t, svc)

	for i := 0; i < throttle.max; i++ {
		if _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); domain.KindOf(err) != domain.KindInvalid {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i, err)
		}
	}

	_, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	if domain.KindOf(err) != domain.KindTooManyRequests {
		t.Fatalf("expected throttle error, got %v", err)
	}
}

func TestUserService_Login_SuccessResetsThrottle(t *testing.T) {
	svc, _, _, throttle := newUserFixture()
	registerUser(t, svc)

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(context.Background(), "alice@example.com", "wrong")
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "Sup3rSecret"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if throttle.failures["alice@example.com"] != 0 {
		t.Fatalf("expected failure count reset, got %d", throttle.failures["alice@example.com"])
	}
}

func TestUserService_Profile(t *testing.T) {
	svc, users, articles, _ := newUserFixture()
	registerUser(t, svc)
	userID := users.users[0].ID
	seedArticle(articles, "a-1", "cat-1", userID, 4, false)
	seedArticle(articles, "a-2", "cat-1", "someone-else", 4, false)

	profile, err := svc.Profile(context.Background(), userID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.Articles) != 1 || profile.Articles[0].ID != "a-1" {
		t.Fatalf("expected only the user's articles, got %+v", profile.Articles)
	}
}

func TestUserService_Profile_MissingUser(t *testing.T) {
	svc, _, _, _ := newUserFixture()

	if _, err := svc.Profile(context.Background(), "ghost"); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, err := svc.Profile(context.Background(), ""); domain.KindOf(err) != domain.KindInvalid {
		t.Fatalf("expected invalid for empty id, got %v", err)
	}
}
