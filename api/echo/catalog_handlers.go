package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vividmart/storefront/domain"
)

// ListProductsHandler returns a filtered, paged product listing.
func (a *StorefrontAPI) ListProductsHandler(c echo.Context) error {
	filter := domain.ProductFilter{
		Category: c.QueryParam("category"),
		Status:   domain.ProductStatus(c.QueryParam("status")),
	}
	if filter.Status == "" {
		filter.Status = domain.ProductStatusActive
	}
	if v := c.QueryParam("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PerPage, _ = strconv.Atoi(c.QueryParam("perPage"))

	products, total, err := a.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	return respond(c, http.StatusOK, "", ListResponse{Items: products, Total: total, Page: page})
}

// GetProductHandler returns one product, cache-first.
func (a *StorefrontAPI) GetProductHandler(c echo.Context) error {
	product, err := a.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", product)
}

// ListCategoriesHandler returns the active category tree, cache-first.
func (a *StorefrontAPI) ListCategoriesHandler(c echo.Context) error {
	categories, err := a.catalog.ListCategories(c.Request().Context(), true)
	if err != nil {
		return serviceError(c, err)
	}
	return respond(c, http.StatusOK, "", categories)
}
