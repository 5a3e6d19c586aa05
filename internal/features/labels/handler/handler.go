package handler

import (
	"net/http"

	catalog "order-portal/internal/features/catalog/domain"
	"order-portal/internal/features/labels/domain"
	orders "order-portal/internal/features/orders/domain"

	"github.com/gofiber/fiber/v2"
)

// LabelsHandler serves the display tables of every enum.
type LabelsHandler struct {
	tables domain.Tables
}

// NewLabelsHandler creates a LabelsHandler over the canonical tables.
func NewLabelsHandler() *LabelsHandler {
	return &LabelsHandler{
		tables: domain.Tables{
			ProductStatus:   catalog.StatusLabels,
			ProductCategory: catalog.CategoryLabels,
			OrderStatus:     orders.StatusLabels,
			OrderItemType:   orders.ItemTypeLabels,
		},
	}
}

// GetLabels handles GET /labels.
// @Summary Get label tables
// @Description Display labels for product status, product category, order status and order item type.
// @Tags Labels
// @Produce json
// @Success 200 {object} domain.Tables
// @Router /labels [get]
func (h *LabelsHandler) GetLabels(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.tables)
}
