package identity

import (
	"context"
	"errors"
	"time"

	"github.com/bazaartech/backend/internal/domain/identity"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/bazaartech/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles user registration and authentication
type Service struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewService creates an identity Service
func NewService(users identity.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		jwt:       jwtService,
		blacklist: blacklist,
		logger:    logger,
	}
}

// RegisterInput is the validated input for user registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      identity.Role
}

// UserResponse is the API shape of a user, without credentials
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Role      identity.Role `json:"role"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
}

func toUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, input RegisterInput) (*UserResponse, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(input.Email, input.Password, input.FirstName, input.LastName, input.Role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	response := toUserResponse(user)
	return &response, nil
}

// Login authenticates a user and issues an access token. Invalid
// credentials and unknown accounts are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active || !user.VerifyPassword(password) {
		return nil, shared.ErrUnauthorized
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// GetByID retrieves one user
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toUserResponse(user)
	return &response, nil
}
