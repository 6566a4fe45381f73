package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/api/metrics"
	"github.com/mgluxury/boutique/internal/core/service"
)

// CheckoutHandler submits the caller's cart as an order.
type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Submit persists the order and returns the messaging handoff link. A
// storage failure does not fail the request: the handoff still proceeds
// and the response carries a warning.
//
// @Summary      Submit the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Cart-ID  header    string           false  "Cart identifier"
// @Param        body       body      checkoutRequest  true   "Customer details"
// @Success      201        {object}  checkoutResponse
// @Success      200        {object}  checkoutResponse
// @Failure      400        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.checkout.Submit(c.Request().Context(), service.CheckoutInput{
		CartID:  cartID(c),
		UserID:  ctxUserID(c),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}

	resp := checkoutResponse{
		Persisted:   res.Persisted,
		Complete:    res.Complete,
		Message:     res.Message,
		HandoffURL:  res.HandoffURL,
		CartCleared: res.CartCleared,
		Warning:     res.Warning,
	}
	if res.Order != nil {
		resp.OrderID = res.Order.ID
		resp.Total = res.Order.TotalPrice
		metrics.CheckoutAmount.Observe(float64(res.Order.TotalPrice))
	}
	metrics.CheckoutsTotal.WithLabelValues(checkoutOutcome(res)).Inc()

	code := http.StatusOK
	if res.Persisted {
		code = http.StatusCreated
	}
	return c.JSON(code, resp)
}

func checkoutOutcome(res *service.CheckoutResult) string {
	switch {
	case res.Complete:
		return "complete"
	case res.Persisted:
		return "partial"
	default:
		return "handoff_only"
	}
}
