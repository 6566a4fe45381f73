package handler

import (
	"fmt"
	"time"

	"github.com/mgluxury/boutique/internal/core/cart"
	"github.com/mgluxury/boutique/internal/core/catalog"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/money"
	"github.com/mgluxury/boutique/internal/core/service"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

// --- catalog ---

type productResponse struct {
	domain.Product
	CategoryLabel  string `json:"category_label"`
	PriceFormatted string `json:"price_formatted"`
	InStock        bool   `json:"in_stock"`
}

func toProductResponse(v service.ProductView, f money.Formatter) productResponse {
	return productResponse{
		Product:        v.Product,
		CategoryLabel:  v.CategoryLabel,
		PriceFormatted: f.Format(v.Price),
		InStock:        v.InStock(),
	}
}

func toProductResponses(views []service.ProductView, f money.Formatter) []productResponse {
	out := make([]productResponse, len(views))
	for i, v := range views {
		out[i] = toProductResponse(v, f)
	}
	return out
}

type paginationResponse struct {
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	From       int                `json:"from"`
	To         int                `json:"to"`
	Caption    string             `json:"caption"`
	Controls   []catalog.PageItem `json:"controls"`
}

func toPagination(total, page, pageSize, totalPages int) paginationResponse {
	from, to := catalog.ShownRange(page, pageSize, total)
	return paginationResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		From:       from,
		To:         to,
		Caption:    fmt.Sprintf("Affichage de %d à %d sur %d", from, to, total),
		Controls:   catalog.PageControls(page, totalPages),
	}
}

type productPageResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type productDetailResponse struct {
	productResponse
	Related []productResponse `json:"related"`
}

// --- cart ---

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ProductID         string `json:"product_id"`
	Name              string `json:"name"`
	Image             string `json:"image"`
	Price             int64  `json:"price"`
	Quantity          int    `json:"quantity"`
	Stock             int    `json:"stock"`
	Subtotal          int64  `json:"subtotal"`
	SubtotalFormatted string `json:"subtotal_formatted"`
}

type cartResponse struct {
	CartID         string             `json:"cart_id"`
	Items          []cartLineResponse `json:"items"`
	TotalItems     int                `json:"total_items"`
	TotalPrice     int64              `json:"total_price"`
	TotalFormatted string             `json:"total_formatted"`
}

func toCartResponse(id string, st cart.State, f money.Formatter) cartResponse {
	lines := make([]cartLineResponse, len(st.Lines))
	for i, l := range st.Lines {
		lines[i] = cartLineResponse{
			ProductID:         l.Product.ID,
			Name:              l.Product.Name,
			Image:             l.Product.Image,
			Price:             l.Product.Price,
			Quantity:          l.Quantity,
			Stock:             l.Product.Stock,
			Subtotal:          l.Subtotal(),
			SubtotalFormatted: f.Format(l.Subtotal()),
		}
	}
	return cartResponse{
		CartID:         id,
		Items:          lines,
		TotalItems:     st.TotalItems(),
		TotalPrice:     st.TotalPrice(),
		TotalFormatted: f.Format(st.TotalPrice()),
	}
}

// --- checkout ---

// checkoutRequest is checked by CheckoutService so the customer gets the
// French field messages of the storefront form.
type checkoutRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type checkoutResponse struct {
	OrderID     string `json:"order_id,omitempty"`
	Persisted   bool   `json:"persisted"`
	Complete    bool   `json:"complete"`
	Total       int64  `json:"total"`
	Message     string `json:"message"`
	HandoffURL  string `json:"handoff_url,omitempty"`
	CartCleared bool   `json:"cart_cleared"`
	Warning     string `json:"warning,omitempty"`
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

// --- orders ---

type orderResponse struct {
	domain.Order
	StatusLabel    string `json:"status_label"`
	TotalFormatted string `json:"total_formatted"`
}

func toOrderResponse(o domain.Order, f money.Formatter) orderResponse {
	return orderResponse{Order: o, StatusLabel: o.Status.Label(), TotalFormatted: f.Format(o.TotalPrice)}
}

func toOrderResponses(orders []domain.Order, f money.Formatter) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o, f)
	}
	return out
}

type orderPageResponse struct {
	Data       []orderResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type orderLineResponse struct {
	domain.OrderItem
	ProductName string `json:"product_name"`
	LineTotal   int64  `json:"line_total"`
}

type orderDetailResponse struct {
	orderResponse
	Lines []orderLineResponse `json:"lines"`
}

// --- admin ---

type categoryRequest struct {
	Name        string `json:"name"        validate:"required"`
	Label       string `json:"label"       validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type productRequest struct {
	Name        string `json:"name"     validate:"required"`
	Price       int64  `json:"price"    validate:"gte=0"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Composition string `json:"composition"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"    validate:"gte=0"`
	Featured    bool   `json:"featured"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

type orderEventRequest struct {
	OrderID   string    `json:"order_id"  validate:"required"`
	Status    string    `json:"status"    validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Source    string    `json:"source"    validate:"required"`
	Notes     string    `json:"notes"`
}

type imageResponse struct {
	URL string `json:"url"`
}
