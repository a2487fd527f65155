package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

// TokenVerifier is the slice of the token service the gateway needs.
type TokenVerifier interface {
	VerifyAccessToken(token string) (domain.Principal, error)
}

// Authenticate is the transport-free authentication core: it maps an
// Authorization header value to a principal or a stable API error. The echo
// adapters below only translate its result into responses and context.
func Authenticate(verifier TokenVerifier, authHeader string) (domain.Principal, *apperrors.APIError) {
	token, ok := bearerToken(authHeader)
	if !ok {
		return domain.Principal{}, apperrors.ErrAccessTokenRequired
	}
	principal, err := verifier.VerifyAccessToken(token)
	if err != nil {
		return domain.Principal{}, apperrors.ErrInvalidOrExpiredToken
	}
	return principal, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthGateway provides the echo middleware for authentication and coarse
// authorization.
type AuthGateway struct {
	verifier TokenVerifier
}

// NewAuthGateway creates an AuthGateway.
func NewAuthGateway(verifier TokenVerifier) *AuthGateway {
	return &AuthGateway{verifier: verifier}
}

// Authenticate rejects requests without a valid bearer token and attaches
// the principal to the request context.
func (g *AuthGateway) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, authErr := Authenticate(g.verifier, c.Request().Header.Get(echo.HeaderAuthorization))
			if authErr != nil {
				return RespondError(c, authErr)
			}
			attachPrincipal(c, principal)
			return next(c)
		}
	}
}

// OptionalAuthenticate attaches the principal when a valid token is present
// and silently continues without identity otherwise. Used on routes that
// behave differently for guests and signed-in users.
func (g *AuthGateway) OptionalAuthenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if principal, authErr := Authenticate(g.verifier, c.Request().Header.Get(echo.HeaderAuthorization)); authErr == nil {
				attachPrincipal(c, principal)
			}
			return next(c)
		}
	}
}

// RequireAdmin continues only for admin principals. It must run after
// Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return RespondError(c, apperrors.ErrAccessTokenRequired)
			}
			if !principal.IsAdmin() {
				return RespondError(c, apperrors.ErrAdminAccessRequired)
			}
			return next(c)
		}
	}
}

// CheckOwnershipOrAdmin returns the API error to respond with when the
// principal neither owns the target resource nor is an admin, and nil when
// access is allowed.
func CheckOwnershipOrAdmin(principal domain.Principal, targetUserID string) *apperrors.APIError {
	if principal.IsAdmin() || principal.UserID == targetUserID {
		return nil
	}
	return apperrors.ErrAccessDenied
}

// PrincipalFrom retrieves the authenticated principal attached by
// Authenticate or OptionalAuthenticate.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	return domain.PrincipalFromContext(c.Request().Context())
}

func attachPrincipal(c echo.Context, p domain.Principal) {
	ctx := domain.WithPrincipal(c.Request().Context(), p)
	c.SetRequest(c.Request().WithContext(ctx))
}

// RespondError writes the standard error envelope for a stable API error.
func RespondError(c echo.Context, err *apperrors.APIError) error {
	return c.JSON(err.Status, map[string]any{
		"success": false,
		"message": err.Message,
	})
}
