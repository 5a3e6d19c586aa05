package handler

import (
	"net/http"
	"strings"

	"order-portal/internal/core/server"
	"order-portal/internal/core/validation"
	"order-portal/internal/features/orders/domain"
	"order-portal/internal/features/orders/ports"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// LineRequest is one requested order line.
type LineRequest struct {
	SKU string `json:"sku" validate:"required"`
	A   int    `json:"a" validate:"max=2147483647"`
	B   int    `json:"b" validate:"max=2147483647"`
	C   int    `json:"c" validate:"max=2147483647"`
}

// CreateOrderRequest represents the request body for creating an order.
type CreateOrderRequest struct {
	ClientID *uint         `json:"client_id"`
	Comment  *string       `json:"comment"`
	Device   *string       `json:"device"`
	Items    []LineRequest `json:"items" validate:"dive"`
}

// ReviseItemsRequest represents the request body for replacing order items.
type ReviseItemsRequest struct {
	Items []LineRequest `json:"items" validate:"dive"`
}

// StatusRequest represents the request body for a status change.
type StatusRequest struct {
	// Status is the requested next status. Empty advances one step.
	Status string `json:"status"`
}

func toLines(reqs []LineRequest) []domain.Line {
	lines := make([]domain.Line, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, domain.Line{
			SKU:        r.SKU,
			Quantities: domain.Quantities{A: r.A, B: r.B, C: r.C},
		})
	}
	return lines
}

// CreateOrder handles POST /orders.
// @Summary Create an order
// @Description Validates the lines against the catalog and the client's branches and stores a pending order.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	order, err := h.service.Create(c.UserContext(), domain.Draft{
		ClientID: req.ClientID,
		Comment:  req.Comment,
		Device:   req.Device,
		Lines:    toLines(req.Items),
	})
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// ListOrders handles GET /orders.
// @Summary List orders
// @Description Newest first, optionally for one client.
// @Tags Orders
// @Produce json
// @Param client_id query int false "Client ID"
// @Success 200 {array} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	clientID, err := validation.QueryID(c, "client_id")
	if err != nil {
		return server.WriteError(c, err)
	}

	orders, err := h.service.List(c.UserContext(), clientID)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(orders)
}

// GetOrder handles GET /orders/:id.
// @Summary Get Order by ID
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	order, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// UpdateStatus handles PATCH /orders/:id/status.
// @Summary Advance or transition an order
// @Description An empty status advances one step. Otherwise status must be the next one.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body StatusRequest false "Target status"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req StatusRequest
	if len(c.Body()) > 0 {
		if err := validation.ParseBody(c, &req); err != nil {
			return server.WriteError(c, err)
		}
	}

	var order *domain.Order
	if target := strings.TrimSpace(req.Status); target == "" {
		order, err = h.service.Advance(c.UserContext(), id)
	} else {
		order, err = h.service.Transition(c.UserContext(), id, domain.Status(strings.ToLower(target)))
	}
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// ReviseItems handles PUT /orders/:id/items.
// @Summary Replace the items of a pending order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param items body ReviseItemsRequest true "Items"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /orders/{id}/items [put]
func (h *OrderHandler) ReviseItems(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req ReviseItemsRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	order, err := h.service.ReviseItems(c.UserContext(), id, toLines(req.Items))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// DeleteOrder handles DELETE /orders/:id.
// @Summary Delete a shipped order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}
