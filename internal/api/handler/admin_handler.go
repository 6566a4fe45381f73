package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/money"
	"github.com/mgluxury/boutique/internal/core/service"
)

// AdminHandler serves the back office. All routes require the admin role.
type AdminHandler struct {
	admin     AdminService
	formatter money.Formatter
}

func NewAdminHandler(admin AdminService, f money.Formatter) *AdminHandler {
	return &AdminHandler{admin: admin, formatter: f}
}

// Stats returns the dashboard counters.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	st, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// ProductStats returns per-product sales, best revenue first.
//
// @Summary      Product sales
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[service.ProductSales]
// @Router       /v1/admin/stats/products [get]
func (h *AdminHandler) ProductStats(c echo.Context) error {
	rows, err := h.admin.ProductStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[service.ProductSales]{Data: rows})
}

// CreateCategory adds a category.
//
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/categories [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	cat, err := h.bindCategory(c)
	if err != nil {
		return err
	}
	if err := h.admin.CreateCategory(c.Request().Context(), cat); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// UpdateCategory replaces a category's fields.
//
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	cat, err := h.bindCategory(c)
	if err != nil {
		return err
	}
	cat.ID = c.Param("id")
	if err := h.admin.UpdateCategory(c.Request().Context(), cat); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory removes a category. Products keep their key.
//
// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.admin.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) bindCategory(c echo.Context) (*domain.Category, error) {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &domain.Category{
		Name:        req.Name,
		Label:       req.Label,
		Description: req.Description,
		Image:       req.Image,
	}, nil
}

// CreateProduct adds a product, flagged as new.
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	p, err := h.bindProduct(c)
	if err != nil {
		return err
	}
	if err := h.admin.CreateProduct(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct replaces a product's fields.
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	p, err := h.bindProduct(c)
	if err != nil {
		return err
	}
	p.ID = c.Param("id")
	if err := h.admin.UpdateProduct(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct removes a product.
//
// @Summary      Delete a product
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.admin.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) bindProduct(c echo.Context) (*domain.Product, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &domain.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Composition: req.Composition,
		Image:       req.Image,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}, nil
}
