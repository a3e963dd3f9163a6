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

type PaymentHandler struct {
	svc    *service.PaymentService
	logger *zap.Logger
}

func NewPaymentHandler(svc *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, logger: logger}
}

func (h *PaymentHandler) Plans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.svc.Plans(),
	})
}

type subscribeReq struct {
	PlanID       string `json:"planId" validate:"required,oneof=premium professional"`
	BillingCycle string `json:"billingCycle" validate:"omitempty,oneof=monthly yearly"`
}

func (h *PaymentHandler) Subscribe(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req subscribeReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}
	cycle := models.BillingCycle(req.BillingCycle)
	if cycle == "" {
		cycle = models.BillingMonthly
	}

	sub, err := h.svc.Subscribe(c.Context(), ident.ID, models.PremiumPlan(req.PlanID), cycle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPlan):
			return badRequest(c, "Unknown subscription plan")
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "User not found")
		}
		h.logger.Error("subscription failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Subscription created successfully",
		"subscription": sub,
	})
}

func (h *PaymentHandler) Subscriptions(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	subs, err := h.svc.Subscriptions(c.Context(), ident.ID)
	if err != nil {
		h.logger.Error("subscriptions lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    subs,
	})
}

func (h *PaymentHandler) Cancel(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	if err := h.svc.Cancel(c.Context(), ident.ID, c.Params("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "Subscription not found")
		case errors.Is(err, service.ErrNotOwner):
			return forbidden(c, "Not allowed to cancel this subscription")
		}
		h.logger.Error("subscription cancel failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Subscription cancelled successfully",
	})
}
