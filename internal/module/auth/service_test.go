package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/threadly/server/internal/module/user"
)

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func newTestAuthService(repo user.Repository) *Service {
	return NewService(repo, newTestJWTManager("test-secret"), zap.NewNop())
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		svc := newTestAuthService(repo)

		u, token, expiresAt, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret-password")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "Alice", u.Name)
		assert.NotEqual(t, "s3cret-password", u.PasswordHash)
		assert.True(t, VerifyPassword(u.PasswordHash, "s3cret-password"))
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))
		repo.AssertExpectations(t)
	})

	t.Run("email normalized before lookup", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		svc := newTestAuthService(repo)

		u, _, _, err := svc.Register(ctx, "  Alice@Example.COM ", "Alice", "s3cret-password")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").
			Return(&user.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

		svc := newTestAuthService(repo)

		_, _, _, err := svc.Register(ctx, "alice@example.com", "Alice", "s3cret-password")
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	existing := &user.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: hash,
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(existing, nil)

		svc := newTestAuthService(repo)

		u, token, _, err := svc.Login(ctx, "alice@example.com", "s3cret-password")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)

		claims, err := svc.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(existing, nil)

		svc := newTestAuthService(repo)

		_, _, _, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

		svc := newTestAuthService(repo)

		// An unknown account and a bad password are indistinguishable.
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	existing := &user.User{ID: uuid.New(), Email: "alice@example.com"}

	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)

	svc := newTestAuthService(repo)

	u, err := svc.CurrentUser(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Email, u.Email)
}
