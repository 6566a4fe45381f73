package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/money"
)

// AccountHandler serves the signed-in customer's own data.
type AccountHandler struct {
	accounts  AccountService
	formatter money.Formatter
}

func NewAccountHandler(accounts AccountService, f money.Formatter) *AccountHandler {
	return &AccountHandler{accounts: accounts, formatter: f}
}

// Orders lists the caller's orders, newest first.
//
// @Summary      My orders
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[orderResponse]
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/orders [get]
func (h *AccountHandler) Orders(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orders, err := h.accounts.CustomerOrders(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[orderResponse]{Data: toOrderResponses(orders, h.formatter)})
}
