package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/middleware"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/service"
	"github.com/amirsoft21/bementor/internal/utils"
)

type MessageHandler struct {
	svc    *service.MessageService
	logger *zap.Logger
}

func NewMessageHandler(svc *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, logger: logger}
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	convs, err := h.svc.Conversations(c.Context(), ident.ID)
	if err != nil {
		h.logger.Error("conversations lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    convs,
	})
}

func (h *MessageHandler) ConversationMessages(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	msgs, err := h.svc.ConversationMessages(c.Context(), ident.ID, c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "Conversation not found")
		case errors.Is(err, service.ErrNotOwner):
			return forbidden(c, "Not a participant of this conversation")
		}
		h.logger.Error("conversation messages lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    msgs,
	})
}

type sendMessageReq struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Content     string `json:"content" validate:"required,max=2000"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req sendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	msg, err := h.svc.Send(c.Context(), ident.ID, req.RecipientID, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Recipient not found")
		}
		h.logger.Error("message send failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
		"data":    msg,
	})
}
