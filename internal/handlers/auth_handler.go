package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/middleware"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/service"
	"github.com/amirsoft21/bementor/internal/utils"
)

type AuthHandler struct {
	svc    *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type registerReq struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	user, token, err := h.svc.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return badRequest(c, "A user with this email already exists")
		}
		h.logger.Error("registration failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher admin"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	user, token, err := h.svc.Login(c.Context(), req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleMismatch):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "This account is not a " + req.Role + " account",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid email or password",
			})
		}
		h.logger.Error("login failed", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	user, err := h.svc.CurrentUser(c.Context(), ident.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "User not found")
		}
		h.logger.Error("current user lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Profile(),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// bearer tokens are stateless; the client just drops the token
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	if err := h.svc.ChangePassword(c.Context(), ident.ID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Old password is incorrect",
			})
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "User not found")
		}
		h.logger.Error("change password failed", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}
