package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
	"github.com/vividmart/storefront/internal/metrics"
)

// TokenPair bundles the two credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenClaims is the JWT payload for both access and refresh tokens.
type TokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed, time-bounded credentials.
// Access and refresh tokens are signed with distinct secrets so a leaked
// access secret cannot forge long-lived refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenService creates a TokenService. Both secrets must be non-empty;
// config validation enforces that before this is reached.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime. The session
// registry uses it as the stored refresh token's TTL.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken signs a short-lived credential for API calls.
func (s *TokenService) IssueAccessToken(p domain.Principal) (string, error) {
	return s.sign(p, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived credential used solely to mint new
// token pairs.
func (s *TokenService) IssueRefreshToken(p domain.Principal) (string, error) {
	return s.sign(p, s.refreshSecret, s.refreshTTL)
}

// IssueTokenPair issues both credentials for a principal.
func (s *TokenService) IssueTokenPair(p domain.Principal) (TokenPair, error) {
	access, err := s.IssueAccessToken(p)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(p)
	if err != nil {
		return TokenPair{}, err
	}
	metrics.TokensIssuedTotal.Inc()
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates an access token and returns its principal.
func (s *TokenService) VerifyAccessToken(token string) (domain.Principal, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its principal.
func (s *TokenService) VerifyRefreshToken(token string) (domain.Principal, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) sign(p domain.Principal, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) verify(token string, secret []byte) (domain.Principal, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Principal{}, apperrors.ErrInvalidToken
	}
	if claims.UserID == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}
	return domain.Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
