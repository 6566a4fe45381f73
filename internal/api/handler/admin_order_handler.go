package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// Orders lists orders newest first, one page at a time.
//
// @Summary      List orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-based page"
// @Success      200   {object}  orderPageResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		page = n
	}

	p, err := h.admin.Orders(c.Request().Context(), page)
	if err != nil {
		return err
	}
	pagination := toPagination(p.TotalCount, p.Page.Page, p.PageSize, p.TotalPages)
	pagination.Controls = p.Controls
	return c.JSON(http.StatusOK, orderPageResponse{
		Data:       toOrderResponses(p.Items, h.formatter),
		Pagination: pagination,
	})
}

// Order returns an order with its lines.
//
// @Summary      Get an order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/orders/{id} [get]
func (h *AdminHandler) Order(c echo.Context) error {
	d, err := h.admin.Order(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	lines := make([]orderLineResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = orderLineResponse{OrderItem: l.OrderItem, ProductName: l.ProductName, LineTotal: l.LineTotal()}
	}
	return c.JSON(http.StatusOK, orderDetailResponse{
		orderResponse: toOrderResponse(*d.Order, h.formatter),
		Lines:         lines,
	})
}

// Approve confirms a pending order.
//
// @Summary      Approve an order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/orders/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	if err := h.admin.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order approved"})
}

// Reject cancels a pending order.
//
// @Summary      Reject an order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/orders/{id}/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	if err := h.admin.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order rejected"})
}

// UpdateStatus moves an order along its lifecycle.
//
// @Summary      Change an order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Order ID"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return domain.NewValidationError("status", "statut inconnu")
	}

	if err := h.admin.UpdateStatus(c.Request().Context(), c.Param("id"), status, req.Notes); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order status updated"})
}

// DeleteOrder removes an order and its lines.
//
// @Summary      Delete an order
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Order ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/orders/{id} [delete]
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	if err := h.admin.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
