package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/domain"
)

// CreateProductHandler inserts a catalog product.
func (a *StorefrontAPI) CreateProductHandler(c echo.Context) error {
	var req ProductRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	var product domain.Product
	req.apply(&product)

	if err := a.catalog.CreateProduct(c.Request().Context(), &product); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, "Product created", &product)
}

// UpdateProductHandler rewrites a product and invalidates its cache entry.
func (a *StorefrontAPI) UpdateProductHandler(c echo.Context) error {
	var req ProductRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()

	product, err := a.catalog.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	req.apply(product)

	if err := a.catalog.UpdateProduct(ctx, product); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Product updated", product)
}

// DeleteProductHandler removes a product.
func (a *StorefrontAPI) DeleteProductHandler(c echo.Context) error {
	if err := a.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Product deleted", nil)
}

// CreateCategoryHandler inserts a category.
func (a *StorefrontAPI) CreateCategoryHandler(c echo.Context) error {
	var req CategoryRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	var category domain.Category
	req.apply(&category)

	if err := a.catalog.CreateCategory(c.Request().Context(), &category); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, "Category created", &category)
}

// UpdateCategoryHandler rewrites a category.
func (a *StorefrontAPI) UpdateCategoryHandler(c echo.Context) error {
	var req CategoryRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()

	category, err := a.catalog.GetCategory(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	req.apply(category)

	if err := a.catalog.UpdateCategory(ctx, category); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Category updated", category)
}

// DeleteCategoryHandler removes a category.
func (a *StorefrontAPI) DeleteCategoryHandler(c echo.Context) error {
	if err := a.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Category deleted", nil)
}

// ListOrdersHandler returns all orders, paged, newest first.
func (a *StorefrontAPI) ListOrdersHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("perPage"))
	if page < 1 {
		page = 1
	}

	orders, total, err := a.orders.ListOrders(c.Request().Context(), page, perPage)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", ListResponse{Items: orders, Total: total, Page: page})
}

// UpdateOrderStatusHandler moves an order through its lifecycle.
func (a *StorefrontAPI) UpdateOrderStatusHandler(c echo.Context) error {
	var req OrderStatusRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	id := c.Param("id")
	if err := a.orders.UpdateStatus(c.Request().Context(), id, domain.OrderStatus(req.Status)); err != nil {
		return serviceError(c, err)
	}

	log.Info().Str("order_id", id).Str("status", req.Status).Msg("order status updated")

	return respond(c, http.StatusOK, "Order status updated", nil)
}

// ListCouponsHandler returns all coupons.
func (a *StorefrontAPI) ListCouponsHandler(c echo.Context) error {
	coupons, err := a.coupons.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", coupons)
}

// CreateCouponHandler inserts a coupon.
func (a *StorefrontAPI) CreateCouponHandler(c echo.Context) error {
	var req CouponRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	var coupon domain.Coupon
	req.apply(&coupon)

	if err := a.coupons.Create(c.Request().Context(), &coupon); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusCreated, "Coupon created", &coupon)
}

// UpdateCouponHandler rewrites a coupon, preserving its usage count.
func (a *StorefrontAPI) UpdateCouponHandler(c echo.Context) error {
	var req CouponRequest
	if ok, err := a.bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()

	coupon, err := a.coupons.Get(ctx, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	req.apply(coupon)

	if err := a.coupons.Update(ctx, coupon); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Coupon updated", coupon)
}

// DeleteCouponHandler removes a coupon.
func (a *StorefrontAPI) DeleteCouponHandler(c echo.Context) error {
	if err := a.coupons.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "Coupon deleted", nil)
}
