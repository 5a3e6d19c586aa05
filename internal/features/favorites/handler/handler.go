package handler

import (
	"net/http"

	"order-portal/internal/core/server"
	"order-portal/internal/core/validation"
	"order-portal/internal/features/favorites/domain"
	"order-portal/internal/features/favorites/ports"

	"github.com/gofiber/fiber/v2"
)

// FavoritesHandler handles HTTP requests for favorites.
type FavoritesHandler struct {
	service ports.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(service ports.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		service: service,
	}
}

// ListFavorites handles GET /favorites/:owner.
// @Summary List favorite product ids
// @Tags Favorites
// @Produce json
// @Param owner path string true "Owner"
// @Success 200 {array} int
// @Failure 400 {object} server.ErrorResponse
// @Router /favorites/{owner} [get]
func (h *FavoritesHandler) ListFavorites(c *fiber.Ctx) error {
	ids, err := h.service.ListFavorites(c.UserContext(), c.Params("owner"))
	if err != nil {
		return server.WriteError(c, err)
	}
	return c.Status(http.StatusOK).JSON(ids)
}

// GetFavorite handles GET /favorites/:owner/:productId.
// @Summary Check a favorite
// @Tags Favorites
// @Produce json
// @Param owner path string true "Owner"
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.Favorite
// @Failure 400 {object} server.ErrorResponse
// @Router /favorites/{owner}/{productId} [get]
func (h *FavoritesHandler) GetFavorite(c *fiber.Ctx) error {
	return h.respond(c, func(owner string, productID uint) (bool, error) {
		return h.service.GetFavorite(c.UserContext(), owner, productID)
	})
}

// AddFavorite handles PUT /favorites/:owner/:productId.
// @Summary Mark a product as favorite
// @Tags Favorites
// @Produce json
// @Param owner path string true "Owner"
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.Favorite
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /favorites/{owner}/{productId} [put]
func (h *FavoritesHandler) AddFavorite(c *fiber.Ctx) error {
	return h.respond(c, func(owner string, productID uint) (bool, error) {
		return true, h.service.SetFavorite(c.UserContext(), owner, productID, true)
	})
}

// RemoveFavorite handles DELETE /favorites/:owner/:productId.
// @Summary Unmark a favorite
// @Tags Favorites
// @Produce json
// @Param owner path string true "Owner"
// @Param productId path int true "Product ID"
// @Success 200 {object} domain.Favorite
// @Failure 400 {object} server.ErrorResponse
// @Router /favorites/{owner}/{productId} [delete]
func (h *FavoritesHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.respond(c, func(owner string, productID uint) (bool, error) {
		return false, h.service.SetFavorite(c.UserContext(), owner, productID, false)
	})
}

func (h *FavoritesHandler) respond(c *fiber.Ctx, fn func(owner string, productID uint) (bool, error)) error {
	productID, err := validation.ParamID(c, "productId")
	if err != nil {
		return server.WriteError(c, err)
	}

	owner := c.Params("owner")
	favorite, err := fn(owner, productID)
	if err != nil {
		return server.WriteError(c, err)
	}
	normalized, _ := domain.NormalizeOwner(owner)
	return c.Status(http.StatusOK).JSON(domain.Favorite{
		Owner:     normalized,
		ProductID: productID,
		Favorite:  favorite,
	})
}
