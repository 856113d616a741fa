package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bazaartech/backend/internal/domain/identity"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/bazaartech/backend/internal/infrastructure/auth"
	"github.com/bazaartech/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(users *MockUserRepository) (*Service, *auth.InMemoryTokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration: time.Hour,
		Issuer:                "inventory-backend",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewService(users, jwtService, blacklist, zap.NewNop()), blacklist
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		users.On("FindByEmail", ctx, "new@example.com").Return(nil, shared.ErrNotFound)
		users.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Email == "new@example.com" && u.Role == identity.RoleStaff && u.Active
		})).Return(nil)

		response, err := svc.Register(ctx, RegisterInput{
			Email:    "new@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", response.Email)
		assert.Equal(t, identity.RoleStaff, response.Role)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		existing, err := identity.NewUser("taken@example.com", "supersecret", "", "", identity.RoleStaff)
		require.NoError(t, err)
		users.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil)

		_, err = svc.Register(ctx, RegisterInput{Email: "taken@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		users.AssertNotCalled(t, "Save")
	})

	t.Run("rejects short password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		users.On("FindByEmail", ctx, "short@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Register(ctx, RegisterInput{Email: "short@example.com", Password: "tiny"})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token for valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		user, err := identity.NewUser("alice@example.com", "supersecret", "Alice", "Smith", identity.RoleAdmin)
		require.NoError(t, err)
		users.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)

		response, err := svc.Login(ctx, "alice@example.com", "supersecret")
		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "Bearer", response.TokenType)
		assert.Equal(t, user.ID, response.User.ID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		user, err := identity.NewUser("bob@example.com", "supersecret", "", "", identity.RoleStaff)
		require.NoError(t, err)
		users.On("FindByEmail", ctx, "bob@example.com").Return(user, nil)

		_, err = svc.Login(ctx, "bob@example.com", "wrongpassword")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "supersecret")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)

		user, err := identity.NewUser("gone@example.com", "supersecret", "", "", identity.RoleStaff)
		require.NoError(t, err)
		user.Deactivate()
		users.On("FindByEmail", ctx, "gone@example.com").Return(user, nil)

		_, err = svc.Login(ctx, "gone@example.com", "supersecret")
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the presented token", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, blacklist := newTestService(users)

		user, err := identity.NewUser("carol@example.com", "supersecret", "", "", identity.RoleStaff)
		require.NoError(t, err)
		users.On("FindByEmail", ctx, "carol@example.com").Return(user, nil)

		login, err := svc.Login(ctx, "carol@example.com", "supersecret")
		require.NoError(t, err)

		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-for-unit-tests-only",
			AccessTokenExpiration: time.Hour,
			Issuer:                "inventory-backend",
		})
		claims, err := jwtService.ValidateToken(login.AccessToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, claims))
		revoked, err := blacklist.IsRevoked(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("nil claims are rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc, _ := newTestService(users)
		assert.ErrorIs(t, svc.Logout(ctx, nil), shared.ErrUnauthorized)
	})
}

func TestLoginPropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc, _ := newTestService(users)

	users.On("FindByEmail", ctx, "any@example.com").Return(nil, errors.New("db down"))

	_, err := svc.Login(ctx, "any@example.com", "supersecret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrUnauthorized)
}
