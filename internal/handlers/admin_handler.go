package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/service"
)

type AdminHandler struct {
	svc    *service.UserService
	logger *zap.Logger
}

func NewAdminHandler(svc *service.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		h.logger.Error("user list failed", zap.Error(err))
		return internalError(c)
	}
	public := make([]models.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(public),
		"data":    public,
	})
}

func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	if err := h.svc.Deactivate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "User not found")
		}
		h.logger.Error("user deactivation failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deactivated successfully",
	})
}
