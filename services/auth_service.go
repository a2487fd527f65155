package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
	"github.com/vividmart/storefront/internal/metrics"
)

// AuthService composes the token service, session registry and user store
// into the register/login/refresh/logout flows.
type AuthService struct {
	users    domain.UserRepository
	tokens   *TokenService
	sessions *SessionRegistry
	hasher   PasswordHasher
}

// NewAuthService creates an AuthService.
func NewAuthService(users domain.UserRepository, tokens *TokenService, sessions *SessionRegistry, hasher PasswordHasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, sessions: sessions, hasher: hasher}
}

// Register creates a user account and signs it in.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, TokenPair{}, err
	}
	metrics.UsersRegisteredTotal.Inc()

	pair, err := s.signIn(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Login verifies credentials and issues a token pair. The stored refresh
// token is rotated, ending any previous session for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.LoginFailureTotal.Inc()
			return nil, TokenPair{}, apperrors.ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		metrics.LoginFailureTotal.Inc()
		return nil, TokenPair{}, apperrors.ErrInvalidCredentials
	}

	pair, err := s.signIn(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.UpdateUser(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	metrics.LoginSuccessTotal.Inc()
	return user, pair, nil
}

// Refresh validates the presented refresh token against the stored value for
// its principal and, on success, rotates it for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	principal, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	stored, found, err := s.sessions.GetStoredRefreshToken(ctx, principal.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	if !found || stored != refreshToken {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.users.GetUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return TokenPair{}, apperrors.ErrUserNotFound
		}
		return TokenPair{}, err
	}

	pair, err := s.signIn(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}
	metrics.TokensRefreshedTotal.Inc()
	return pair, nil
}

// Logout removes the stored refresh token. Access tokens stay valid until
// natural expiry; the short access TTL bounds the exposure.
func (s *AuthService) Logout(ctx context.Context, principalID string) error {
	return s.sessions.RemoveRefreshToken(ctx, principalID)
}

// Me returns the account behind a principal.
func (s *AuthService) Me(ctx context.Context, principalID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) signIn(ctx context.Context, user *domain.User) (TokenPair, error) {
	pair, err := s.tokens.IssueTokenPair(domain.PrincipalOf(user))
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.sessions.StoreRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}
