package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/catalog"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/money"
)

// CatalogHandler serves the public storefront listings.
type CatalogHandler struct {
	catalog   CatalogService
	formatter money.Formatter
	pageSize  int
}

func NewCatalogHandler(svc CatalogService, f money.Formatter, pageSize int) *CatalogHandler {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogHandler{catalog: svc, formatter: f, pageSize: pageSize}
}

// Categories lists every category.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[domain.Category]
// @Failure      500  {object}  errorResponse
// @Router       /v1/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.Category]{Data: cats})
}

// Category returns a single category.
//
// @Summary      Get a category
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  errorResponse
// @Router       /v1/categories/{id} [get]
func (h *CatalogHandler) Category(c echo.Context) error {
	cat, err := h.catalog.Category(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Products runs the filter, sort and pagination pipeline.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category   query     string  false  "Category key"
// @Param        min_price  query     int     false  "Minimum unit price"
// @Param        max_price  query     int     false  "Maximum unit price"
// @Param        new        query     bool    false  "Only new products"
// @Param        sort       query     string  false  "default, price-asc, price-desc or name"
// @Param        page       query     int     false  "1-based page"
// @Success      200  {object}  productPageResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	spec, err := h.querySpec(c)
	if err != nil {
		return err
	}

	page, err := h.catalog.Products(c.Request().Context(), spec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productPageResponse{
		Data:       toProductResponses(page.Items, h.formatter),
		Pagination: toPagination(page.TotalCount, page.Page, page.PageSize, page.TotalPages),
	})
}

// querySpec maps the listing query string onto a QuerySpec. Malformed
// numbers are rejected; out-of-range values are clamped by the pipeline.
func (h *CatalogHandler) querySpec(c echo.Context) (catalog.QuerySpec, error) {
	spec := catalog.NewQuerySpec()
	spec.PageSize = h.pageSize
	spec.Category = c.QueryParam("category")
	spec.Sort = catalog.ParseSort(c.QueryParam("sort"))

	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
		}
		spec.Price.Min = n
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
		}
		spec.Price.Max = n
	}
	if v := c.QueryParam("new"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "invalid new")
		}
		spec.NewOnly = b
	}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		spec.Page = n
	}
	return spec, nil
}

// Product returns a product with up to four related products.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	detail, err := h.catalog.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productDetailResponse{
		productResponse: toProductResponse(detail.Product, h.formatter),
		Related:         toProductResponses(detail.Related, h.formatter),
	})
}

// Featured lists the home page selection.
//
// @Summary      Featured products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[productResponse]
// @Router       /v1/products/featured [get]
func (h *CatalogHandler) Featured(c echo.Context) error {
	views, err := h.catalog.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[productResponse]{Data: toProductResponses(views, h.formatter)})
}

// Newest lists the latest products flagged as new.
//
// @Summary      New products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[productResponse]
// @Router       /v1/products/new [get]
func (h *CatalogHandler) Newest(c echo.Context) error {
	views, err := h.catalog.Newest(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[productResponse]{Data: toProductResponses(views, h.formatter)})
}
