package echo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/cache"
	apperrors "github.com/vividmart/storefront/errors"
	"github.com/vividmart/storefront/middleware"
	"github.com/vividmart/storefront/services"
)

const (
	loginRateLimit    = 5
	registerRateLimit = 3
	rateLimitWindow   = time.Minute
)

// Pinger is anything whose backend liveness the health endpoint reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorefrontAPI holds the HTTP handler dependencies.
type StorefrontAPI struct {
	auth     *services.AuthService
	catalog  *services.CatalogService
	carts    *services.CartService
	orders   *services.OrderService
	coupons  *services.CouponService
	gateway  *middleware.AuthGateway
	store    cache.KeyValueStore
	db       Pinger
	validate *validator.Validate
}

// NewStorefrontAPI initializes the storefront API.
func NewStorefrontAPI(
	auth *services.AuthService,
	catalog *services.CatalogService,
	carts *services.CartService,
	orders *services.OrderService,
	coupons *services.CouponService,
	gateway *middleware.AuthGateway,
	store cache.KeyValueStore,
	db Pinger,
) *StorefrontAPI {
	return &StorefrontAPI{
		auth:     auth,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		coupons:  coupons,
		gateway:  gateway,
		store:    store,
		db:       db,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers all storefront routes.
func (a *StorefrontAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", a.HealthHandler)

	auth := e.Group("/api/auth")
	auth.POST("/register", a.RegisterHandler,
		middleware.RateLimit(a.store, "register", registerRateLimit, rateLimitWindow))
	auth.POST("/login", a.LoginHandler,
		middleware.RateLimit(a.store, "login", loginRateLimit, rateLimitWindow))
	auth.POST("/refresh", a.RefreshHandler)
	auth.POST("/logout", a.LogoutHandler, a.gateway.Authenticate())
	auth.GET("/me", a.MeHandler, a.gateway.Authenticate())

	e.GET("/api/products", a.ListProductsHandler)
	e.GET("/api/products/:id", a.GetProductHandler)
	e.GET("/api/categories", a.ListCategoriesHandler)

	cart := e.Group("/api/cart", a.gateway.OptionalAuthenticate())
	cart.GET("", a.GetCartHandler)
	cart.PUT("", a.PutCartHandler)
	cart.DELETE("", a.ClearCartHandler)

	orders := e.Group("/api/orders")
	orders.POST("", a.CheckoutHandler, a.gateway.OptionalAuthenticate())
	orders.GET("", a.ListMyOrdersHandler, a.gateway.Authenticate())
	orders.GET("/:id", a.GetOrderHandler, a.gateway.Authenticate())

	admin := e.Group("/api/admin", a.gateway.Authenticate(), middleware.RequireAdmin())
	admin.POST("/products", a.CreateProductHandler)
	admin.PUT("/products/:id", a.UpdateProductHandler)
	admin.DELETE("/products/:id", a.DeleteProductHandler)
	admin.POST("/categories", a.CreateCategoryHandler)
	admin.PUT("/categories/:id", a.UpdateCategoryHandler)
	admin.DELETE("/categories/:id", a.DeleteCategoryHandler)
	admin.GET("/orders", a.ListOrdersHandler)
	admin.PATCH("/orders/:id/status", a.UpdateOrderStatusHandler)
	admin.GET("/coupons", a.ListCouponsHandler)
	admin.POST("/coupons", a.CreateCouponHandler)
	admin.PUT("/coupons/:id", a.UpdateCouponHandler)
	admin.DELETE("/coupons/:id", a.DeleteCouponHandler)
}

// respond writes the standard success envelope.
func respond(c echo.Context, status int, message string, data any) error {
	body := echo.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

// respondError writes the standard failure envelope.
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// serviceError translates service-layer failures into envelope responses.
// Unknown errors surface as a generic 500 so internals never leak.
func serviceError(c echo.Context, err error) error {
	var apiErr *apperrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return middleware.RespondError(c, apiErr)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, apperrors.ErrNotFound):
		return respondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, apperrors.ErrDuplicate):
		return respondError(c, http.StatusConflict, "Already exists")
	case errors.Is(err, services.ErrEmptyCart):
		return respondError(c, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, services.ErrInvalidCoupon):
		return respondError(c, http.StatusBadRequest, "Invalid or expired coupon")
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return respondError(c, http.StatusInternalServerError, "Internal server error")
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// When it reports false the rejection response has already been written.
func (a *StorefrontAPI) bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := a.validate.Struct(req); err != nil {
		return false, respondError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}
	return true, nil
}
