package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

func newTestTokenService() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour, "storefront-test")
}

func testPrincipal() domain.Principal {
	return domain.Principal{UserID: "user-1", Email: "jo@example.com", Role: domain.RoleUser}
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService()
	p := testPrincipal()

	access, err := ts.IssueAccessToken(p)
	require.NoError(t, err)
	refresh, err := ts.IssueRefreshToken(p)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	got, err := ts.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got, err = ts.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestTokenPair(t *testing.T) {
	ts := newTestTokenService()

	pair, err := ts.IssueTokenPair(testPrincipal())
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = ts.VerifyAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	_, err = ts.VerifyRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

// An access token must never pass refresh verification and vice versa: the
// two secrets are distinct on purpose.
func TestTokenCrossVerificationFails(t *testing.T) {
	ts := newTestTokenService()
	p := testPrincipal()

	access, err := ts.IssueAccessToken(p)
	require.NoError(t, err)
	refresh, err := ts.IssueRefreshToken(p)
	require.NoError(t, err)

	_, err = ts.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = ts.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute, "storefront-test")

	access, err := ts.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	ts := newTestTokenService()

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ts.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenOtherSecretRejected(t *testing.T) {
	ts := newTestTokenService()
	other := NewTokenService("different-secret", "refresh-secret", 15*time.Minute, time.Hour, "storefront-test")

	access, err := other.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenEmptyUserIDRejected(t *testing.T) {
	ts := newTestTokenService()

	access, err := ts.IssueAccessToken(domain.Principal{Email: "no-id@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenTTLAccessors(t *testing.T) {
	ts := newTestTokenService()
	assert.Equal(t, 15*time.Minute, ts.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, ts.RefreshTTL())
}
