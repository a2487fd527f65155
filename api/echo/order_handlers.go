package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/middleware"
	"github.com/vividmart/storefront/services"
)

// CheckoutHandler places an order from the caller's cart. Guests must supply
// an email; signed-in users inherit theirs.
func (a *StorefrontAPI) CheckoutHandler(c echo.Context) error {
	key, ok := cartKey(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Session ID required")
	}

	var req CheckoutRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	in := services.CheckoutInput{
		CartKey:    key,
		Email:      req.Email,
		Addresses:  req.Addresses,
		CouponCode: req.CouponCode,
	}
	if principal, ok := middleware.PrincipalFrom(c); ok {
		in.UserID = principal.UserID
		in.Email = principal.Email
	}
	if in.Email == "" {
		return respondError(c, http.StatusBadRequest, "Email is required")
	}

	order, err := a.orders.Checkout(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Str("user_id", in.UserID).
		Float64("total", order.Total).
		Msg("order placed")

	return respond(c, http.StatusCreated, "Order placed successfully", order)
}

// ListMyOrdersHandler returns the caller's own orders, newest first.
func (a *StorefrontAPI) ListMyOrdersHandler(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)

	orders, err := a.orders.ListUserOrders(c.Request().Context(), principal.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", orders)
}

// GetOrderHandler returns one order. Customers can only read their own;
// admins can read any.
func (a *StorefrontAPI) GetOrderHandler(c echo.Context) error {
	principal, _ := middleware.PrincipalFrom(c)

	order, err := a.orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	if denied := middleware.CheckOwnershipOrAdmin(principal, order.UserID); denied != nil {
		return middleware.RespondError(c, denied)
	}
	return respond(c, http.StatusOK, "", order)
}
