package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/middleware"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/service"
	"github.com/amirsoft21/bementor/internal/utils"
)

type BookingHandler struct {
	svc    *service.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc *service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

type createBookingReq struct {
	TeacherID   string    `json:"teacherId" validate:"required"`
	Subject     string    `json:"subject" validate:"required"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req createBookingReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	booking, err := h.svc.Create(c.Context(), ident.ID, service.BookingInput{
		TeacherID:   req.TeacherID,
		Subject:     req.Subject,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Teacher not found")
		}
		h.logger.Error("booking creation failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created successfully",
		"data":    booking,
	})
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	bookings, err := h.svc.List(c.Context(), ident.ID)
	if err != nil {
		h.logger.Error("bookings lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    bookings,
	})
}
