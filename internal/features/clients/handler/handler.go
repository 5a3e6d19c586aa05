package handler

import (
	"net/http"

	"order-portal/internal/core/server"
	"order-portal/internal/core/validation"
	"order-portal/internal/features/clients/domain"
	"order-portal/internal/features/clients/ports"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles HTTP requests for client accounts.
type ClientHandler struct {
	service ports.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{
		service: service,
	}
}

// ClientRequest represents the request body for saving a client.
type ClientRequest struct {
	Code string `json:"code" validate:"required,max=64"`
	Name string `json:"name" validate:"required"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
	// BranchCount outside 1..3 is stored as 1.
	BranchCount int `json:"branch_count"`
}

func (r ClientRequest) toDomain(id uint) *domain.Client {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Client{
		ID:          id,
		Code:        r.Code,
		Name:        r.Name,
		Active:      active,
		BranchCount: r.BranchCount,
	}
}

// ListClients handles GET /clients.
// @Summary List clients
// @Tags Clients
// @Produce json
// @Success 200 {array} domain.Client
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.service.List(c.UserContext())
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(clients)
}

// CreateClient handles POST /clients.
// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body ClientRequest true "Client"
// @Success 201 {object} domain.Client
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req ClientRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	client, err := h.service.Save(c.UserContext(), req.toDomain(0))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(client)
}

// UpdateClient handles PUT /clients/:id.
// @Summary Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param client body ClientRequest true "Client"
// @Success 200 {object} domain.Client
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	var req ClientRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return server.WriteError(c, err)
	}

	client, err := h.service.Save(c.UserContext(), req.toDomain(id))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(client)
}

// DeleteClient handles DELETE /clients/:id.
// @Summary Delete a client
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return server.WriteError(c, err)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Client deleted successfully",
	})
}
