package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "github.com/vividmart/storefront/errors"
	"github.com/vividmart/storefront/middleware"
)

// RegisterHandler creates an account and signs the new user in.
func (a *StorefrontAPI) RegisterHandler(c echo.Context) error {
	var req RegisterRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	user, pair, err := a.auth.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	return respond(c, http.StatusCreated, "User registered successfully", AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// LoginHandler verifies credentials and issues a token pair.
func (a *StorefrontAPI) LoginHandler(c echo.Context) error {
	var req LoginRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	user, pair, err := a.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return respond(c, http.StatusOK, "Login successful", AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RefreshHandler rotates a refresh token into a fresh token pair.
func (a *StorefrontAPI) RefreshHandler(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return middleware.RespondError(c, apperrors.ErrRefreshTokenRequired)
	}

	pair, err := a.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(c, err)
	}

	return respond(c, http.StatusOK, "Token refreshed", AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// LogoutHandler discards the caller's stored refresh token. Logging out an
// already logged-out session succeeds.
func (a *StorefrontAPI) LogoutHandler(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)

	if err := a.auth.Logout(c.Request().Context(), principal.UserID); err != nil {
		return serviceError(c, err)
	}

	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// MeHandler returns the authenticated user's profile.
func (a *StorefrontAPI) MeHandler(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)

	user, err := a.auth.Me(c.Request().Context(), principal.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	return respond(c, http.StatusOK, "", user)
}
