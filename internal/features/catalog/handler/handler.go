package handler

import (
	"net/http"

	"order-portal/internal/core/server"
	"order-portal/internal/core/validation"
	"order-portal/internal/features/catalog/domain"
	"order-portal/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service ports.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// ProductRequest represents the request body for saving a product.
type ProductRequest struct {
	SKU         string           `json:"sku" validate:"required,max=64"`
	Brand       string           `json:"brand" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Category    string           `json:"category" validate:"required,oneof=brake_master clutch_master brake_slave clutch_slave brake_pads"`
	Status      string           `json:"status" validate:"required,oneof=available low-stock out-of-stock incoming"`
	ETA         *string          `json:"eta"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	Images      []string         `json:"images"`
}

func (r ProductRequest) toDomain(id uint) *domain.Product {
	return &domain.Product{
		ID:          id,
		SKU:         r.SKU,
		Brand:       r.Brand,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Status:      domain.Status(r.Status),
		ETA:         r.ETA,
		Price:       r.Price,
		Images:      r.Images,
	}
}

// ListProducts handles GET /products.
// @Summary List products
// @Description Lists the catalog filtered by free text, category, status or an owner's favorites.
// @Tags Products
// @Produce json
// @Param q query string false "Text matched against SKU, brand and description"
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param favorites_of query string false "Only favorites of this owner"
// @Success 200 {array} domain.Product
// @Failure 400 {object} server.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	filter := domain.Filter{
		Query:    c.Query("q"),
		Category: domain.Category(c.Query("category")),
		Status:   domain.Status(c.Query("status")),
	}

	products, err := h.service.List(c.UserContext(), filter, c.Query("favorites_of"))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(products)
}

// GetProduct handles GET /products/:id.
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} server.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(product)
}

// CreateProduct handles POST /products.
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	product, err := h.service.Save(c.UserContext(), req.toDomain(0))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT /products/:id.
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req ProductRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	product, err := h.service.Save(c.UserContext(), req.toDomain(id))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(product)
}

// DeleteProduct handles DELETE /products/:id.
// @Summary Delete a product
// @Description Fails with 409 while any order item references the product.
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
