package handler

import (
	"net/http"

	"order-portal/internal/core/apperror"
	"order-portal/internal/core/server"
	"order-portal/internal/core/validation"
	"order-portal/internal/features/cart/ports"
	orders "order-portal/internal/features/orders/domain"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for client carts.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// AddItemRequest represents the request body for adding a product.
type AddItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// SetQuantityRequest represents the request body for a branch quantity.
type SetQuantityRequest struct {
	Branch string `json:"branch" validate:"required"`
	// Quantity accepts numbers and numeric strings. Anything else counts as 0.
	Quantity any `json:"quantity" swaggertype:"string"`
}

// SubmitRequest represents the optional request body of a cart submission.
type SubmitRequest struct {
	Comment *string `json:"comment"`
	Device  *string `json:"device"`
}

// GetCart handles GET /clients/:id/cart.
// @Summary Get a client's cart
// @Tags Cart
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} server.ErrorResponse
// @Router /clients/{id}/cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	cart, err := h.service.Get(c.UserContext(), clientID)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// AddItem handles POST /clients/:id/cart/items.
// @Summary Add one unit of a product to branch A
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param item body AddItemRequest true "Product"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /clients/{id}/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req AddItemRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	cart, err := h.service.AddProduct(c.UserContext(), clientID, req.ProductID)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// SetQuantity handles PUT /clients/:id/cart/items/:productId.
// @Summary Set the quantity of one branch
// @Description Branches the client does not collect stay at 0. A line left with nothing is removed.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param productId path int true "Product ID"
// @Param quantity body SetQuantityRequest true "Branch quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /clients/{id}/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}
	productID, err := validation.ParamID(c, "productId")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req SetQuantityRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}
	branch, err := orders.ParseBranch(req.Branch)
	if err != nil {
		return server.WriteError(c, apperror.Validation(err, err.Error()))
	}

	cart, err := h.service.SetQuantity(c.UserContext(), clientID, productID, branch, req.Quantity)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// RemoveItem handles DELETE /clients/:id/cart/items/:productId.
// @Summary Remove a product from the cart
// @Tags Cart
// @Produce json
// @Param id path int true "Client ID"
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.Cart
// @Failure 404 {object} server.ErrorResponse
// @Router /clients/{id}/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}
	productID, err := validation.ParamID(c, "productId")
	if err != nil {
		return server.WriteError(c, err)
	}

	cart, err := h.service.RemoveProduct(c.UserContext(), clientID, productID)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(cart)
}

// ClearCart handles DELETE /clients/:id/cart.
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} server.ErrorResponse
// @Router /clients/{id}/cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	if err := h.service.Clear(c.UserContext(), clientID); err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cart cleared successfully",
	})
}

// SubmitCart handles POST /clients/:id/cart/submit.
// @Summary Turn the cart into an order
// @Description The cart is cleared only when the order was created.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param order body SubmitRequest false "Comment and device"
// @Success 201 {object} orders.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Router /clients/{id}/cart/submit [post]
func (h *CartHandler) SubmitCart(c *fiber.Ctx) error {
	clientID, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req SubmitRequest
	if len(c.Body()) > 0 {
		if err := validation.ParseBody(c, &req); err != nil {
			return server.WriteError(c, err)
		}
	}

	order, err := h.service.Submit(c.UserContext(), clientID, req.Comment, req.Device)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(order)
}
