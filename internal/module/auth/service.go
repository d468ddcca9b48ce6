package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/threadly/server/internal/module/user"
)

// Service provides authentication business logic.
type Service struct {
	users  user.Repository
	jwt    *JWTManager
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(users user.Repository, jwt *JWTManager, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a new account and issues an access token.
func (s *Service) Register(ctx context.Context, email, name, password string) (*user.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
	)

	return u, token, expiresAt, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if u == nil || !VerifyPassword(u.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return u, token, expiresAt, nil
}

// CurrentUser resolves the account behind an authenticated user id.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ValidateAccessToken validates a bearer token.
func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	return s.jwt.ValidateAccessToken(token)
}
