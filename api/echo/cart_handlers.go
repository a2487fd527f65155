package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vividmart/storefront/domain"
	"github.com/vividmart/storefront/middleware"
)

// cartKey resolves the cart owner: the user ID for signed-in customers, the
// X-Session-Id header for guests. Reports false when neither is present.
func cartKey(c echo.Context) (string, bool) {
	if principal, ok := middleware.PrincipalFrom(c); ok {
		return principal.UserID, true
	}
	if sid := c.Request().Header.Get("X-Session-Id"); sid != "" {
		return sid, true
	}
	return "", false
}

// GetCartHandler returns the caller's cart, empty when none exists.
func (a *StorefrontAPI) GetCartHandler(c echo.Context) error {
	key, ok := cartKey(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Session ID required")
	}

	cart, err := a.carts.Get(c.Request().Context(), key)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", cart)
}

// PutCartHandler replaces the cart contents. Lines are validated against the
// catalog and quantities clamped to available stock.
func (a *StorefrontAPI) PutCartHandler(c echo.Context) error {
	key, ok := cartKey(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Session ID required")
	}

	var req PutCartRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	cart, err := a.carts.Put(c.Request().Context(), key, items)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Cart updated", cart)
}

// ClearCartHandler empties the cart. Clearing a missing cart succeeds.
func (a *StorefrontAPI) ClearCartHandler(c echo.Context) error {
	key, ok := cartKey(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Session ID required")
	}

	if err := a.carts.Clear(c.Request().Context(), key); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Cart cleared", nil)
}
