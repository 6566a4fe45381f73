package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/api/metrics"
	"github.com/mgluxury/boutique/internal/core/cart"
	"github.com/mgluxury/boutique/internal/core/money"
)

// CartHandler exposes the cart of the caller's X-Cart-ID. Every mutation
// answers with the full cart so the client can re-render without a re-fetch.
type CartHandler struct {
	carts     CartService
	formatter money.Formatter
}

func NewCartHandler(carts CartService, f money.Formatter) *CartHandler {
	return &CartHandler{carts: carts, formatter: f}
}

// Get returns the current cart.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-ID  header    string  false  "Cart identifier"
// @Success      200        {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	id := cartID(c)
	return c.JSON(http.StatusOK, toCartResponse(id, h.carts.Snapshot(c.Request().Context(), id), h.formatter))
}

// AddItem adds quantity units of a product, capped at its stock.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-ID  header    string              false  "Cart identifier"
// @Param        body       body      addCartItemRequest  true   "Product and quantity"
// @Success      200        {object}  cartResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	id := cartID(c)
	st, err := h.carts.Add(c.Request().Context(), id, req.ProductID, req.Quantity)
	return h.respond(c, "add", id, st, err)
}

// UpdateItem sets the quantity of a line; zero or less removes it.
//
// @Summary      Change a cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-ID   header    string                 false  "Cart identifier"
// @Param        product_id  path      string                 true   "Product ID"
// @Param        body        body      updateCartItemRequest  true   "New quantity"
// @Success      200         {object}  cartResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/cart/items/{product_id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id := cartID(c)
	st, err := h.carts.UpdateQuantity(c.Request().Context(), id, c.Param("product_id"), req.Quantity)
	return h.respond(c, "update", id, st, err)
}

// RemoveItem drops a line from the cart.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        X-Cart-ID   header    string  false  "Cart identifier"
// @Param        product_id  path      string  true   "Product ID"
// @Success      200         {object}  cartResponse
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	id := cartID(c)
	st, err := h.carts.Remove(c.Request().Context(), id, c.Param("product_id"))
	return h.respond(c, "remove", id, st, err)
}

// Clear empties the cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-ID  header    string  false  "Cart identifier"
// @Success      200        {object}  cartResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	id := cartID(c)
	err := h.carts.Clear(c.Request().Context(), id)
	return h.respond(c, "clear", id, cart.State{}, err)
}

func (h *CartHandler) respond(c echo.Context, op, id string, st cart.State, err error) error {
	if err != nil {
		return err
	}
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	return c.JSON(http.StatusOK, toCartResponse(id, st, h.formatter))
}
