package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/auth"
	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/repository"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// AuthDependencies bundles the collaborators of AuthService.
type AuthDependencies struct {
	Users      *repository.UserRepository
	Tokens     *auth.TokenManager
	Logger     *zap.Logger
	BcryptCost int
	Now        func() time.Time
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// CreateUserInput is the admin payload for provisioning an account.
type CreateUserInput struct {
	Username string
	Name     string
	Password string
	Role     domain.Role
	Phone    string
	Area     string
}

type AuthService struct {
	deps AuthDependencies
}

func NewAuthService(deps AuthDependencies) *AuthService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &AuthService{deps: deps}
}

// Login verifies credentials and issues an access token. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.deps.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, apperrors.ToDomainError(err)
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.deps.Tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.deps.Logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUser provisions an account. Usernames are unique.
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, apperrors.Invalid("invalid user payload", map[string]string{"Role": "unknown role"})
	}
	if in.Username == "" || in.Password == "" {
		return nil, apperrors.Invalid("invalid user payload", map[string]string{"Username": "username and password are required"})
	}
	if _, err := s.deps.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.Conflict("username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ToDomainError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.deps.BcryptCost)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	now := s.deps.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		Phone:        in.Phone,
		Area:         in.Area,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.deps.Users.Create(ctx, user); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return users, nil
}

// SetActive enables or disables an account.
func (s *AuthService) SetActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	user, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	user.IsActive = active
	user.UpdatedAt = s.deps.Now()
	if err := s.deps.Users.Update(ctx, user); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return user, nil
}
