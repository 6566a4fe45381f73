package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/core/ports"
)

// EventHandler handles order status event ingestion.
type EventHandler struct {
	dispatcher EventDispatcher
}

// NewEventHandler creates an EventHandler backed by the given dispatcher.
func NewEventHandler(dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/admin/orders/event. It enqueues a single event and returns 202.
//
// @Summary      Ingest a single order status event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      orderEventRequest  true  "Order status event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/admin/orders/event [post]
func (h *EventHandler) Receive(c echo.Context) error {
	var req orderEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.dispatcher.Enqueue(c.Request().Context(), toEventInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/admin/orders/events. It enqueues a batch and returns 202.
//
// @Summary      Ingest a batch of order status events
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []orderEventRequest  true  "Array of order status events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/admin/orders/events [post]
func (h *EventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []orderEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.OrderStatusEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toEventInput(req))
	}

	n, err := h.dispatcher.EnqueueBatch(c.Request().Context(), inputs)
	if err != nil {
		return fmt.Errorf("batch cut short after %d of %d events: %w", n, len(inputs), err)
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   n,
	})
}

func toEventInput(r orderEventRequest) ports.OrderStatusEventInput {
	return ports.OrderStatusEventInput{
		OrderID:   r.OrderID,
		Status:    r.Status,
		Timestamp: r.Timestamp,
		Source:    r.Source,
		Notes:     r.Notes,
	}
}
