package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// LoginThrottle abstracts the failed-login counter (Redis). Throttle store
// failures degrade to allowing the attempt, never to blocking it.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// UserService implements registration, login, and profile retrieval, and owns
// token issuance. Tokens are HS256 JWTs with the user id as subject.
type UserService struct {
	users     ports.UserRepository
	articles  ports.ArticleRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	articles ports.ArticleRepository,
	throttle LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &UserService{
		users:     users,
		articles:  articles,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an account and returns a signed token. Duplicate email or
// username fails with a deliberately generic message.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	exists, err := s.users.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.Invalid("a user with this email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index can still fire between the pre-check and the
		// insert; report it the same way as the pre-check.
		if domain.KindOf(err) == domain.KindConflict {
			return "", domain.Invalid("a user with this email or username already exists")
		}
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return s.generateToken(user.ID)
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error to resist account enumeration.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	throttled, err := s.throttle.TooManyFailures(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
	} else if throttled {
		return "", domain.TooManyRequests("too many login attempts, try again later")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.recordFailure(ctx, email)
		return "", domain.Invalid("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", domain.Invalid("invalid credentials")
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login throttle")
	}

	return s.generateToken(user.ID)
}

// Profile returns the user's profile with a summary of their articles.
func (s *UserService) Profile(ctx context.Context, userID string) (*ports.UserProfile, error) {
	if userID == "" {
		return nil, domain.Invalid("user id is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.FindByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}

	briefs := make([]ports.ArticleBrief, 0, len(articles))
	for _, a := range articles {
		briefs = append(briefs, ports.ArticleBrief{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}

	return &ports.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Articles:  briefs,
	}, nil
}

func (s *UserService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *UserService) generateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
