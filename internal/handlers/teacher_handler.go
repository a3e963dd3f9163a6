package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/middleware"
	"github.com/amirsoft21/bementor/internal/repository"
	"github.com/amirsoft21/bementor/internal/service"
	"github.com/amirsoft21/bementor/internal/utils"
)

type TeacherHandler struct {
	svc    *service.TeacherService
	logger *zap.Logger
}

func NewTeacherHandler(svc *service.TeacherService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{svc: svc, logger: logger}
}

func (h *TeacherHandler) List(c *fiber.Ctx) error {
	filter := repository.TeacherFilter{
		Search:   c.Query("search"),
		Subject:  c.Query("subject"),
		Location: c.Query("location"),
		SortBy:   c.Query("sortBy", "rating"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 12),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		filter.MinRating = &v
	}

	teachers, total, pagination, err := h.svc.Search(c.Context(), filter)
	if err != nil {
		h.logger.Error("teacher search failed", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(teachers),
		"total":      total,
		"pagination": pagination,
		"data":       teachers,
	})
}

func (h *TeacherHandler) Featured(c *fiber.Ctx) error {
	teachers, err := h.svc.Featured(c.Context())
	if err != nil {
		h.logger.Error("featured teachers failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(teachers),
		"data":    teachers,
	})
}

func (h *TeacherHandler) Get(c *fiber.Ctx) error {
	teacher, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Teacher not found")
		}
		h.logger.Error("teacher lookup failed", zap.Error(err))
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    teacher,
	})
}

type createTeacherReq struct {
	Subjects        []string `json:"subjects" validate:"required,min=1,dive,required"`
	Education       string   `json:"education" validate:"required"`
	Experience      string   `json:"experience" validate:"required"`
	HourlyRate      float64  `json:"hourlyRate" validate:"gte=0"`
	Bio             string   `json:"bio" validate:"required,max=1000"`
	Availability    []string `json:"availability" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Languages       []string `json:"languages"`
	Specializations []string `json:"specializations"`
	Achievements    []string `json:"achievements"`
}

func (h *TeacherHandler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req createTeacherReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	teacher, err := h.svc.CreateProfile(c.Context(), ident, service.TeacherInput{
		Subjects:        req.Subjects,
		Education:       &req.Education,
		Experience:      &req.Experience,
		HourlyRate:      &req.HourlyRate,
		Bio:             &req.Bio,
		Availability:    req.Availability,
		Languages:       req.Languages,
		Specializations: req.Specializations,
		Achievements:    req.Achievements,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileExists):
			return badRequest(c, "Teacher profile already exists")
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "Teacher profile not found")
		}
		h.logger.Error("teacher profile creation failed", zap.Error(err))
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Teacher profile created successfully",
		"data":    teacher,
	})
}

type updateTeacherReq struct {
	Subjects        []string `json:"subjects" validate:"omitempty,min=1,dive,required"`
	Education       *string  `json:"education"`
	Experience      *string  `json:"experience"`
	HourlyRate      *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	Bio             *string  `json:"bio" validate:"omitempty,max=1000"`
	Availability    []string `json:"availability" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Languages       []string `json:"languages"`
	Specializations []string `json:"specializations"`
	Achievements    []string `json:"achievements"`
}

func (h *TeacherHandler) Update(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return internalError(c)
	}
	var req updateTeacherReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := utils.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	teacher, err := h.svc.UpdateProfile(c.Context(), ident, c.Params("id"), service.TeacherInput{
		Subjects:        req.Subjects,
		Education:       req.Education,
		Experience:      req.Experience,
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
		Availability:    req.Availability,
		Languages:       req.Languages,
		Specializations: req.Specializations,
		Achievements:    req.Achievements,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "Teacher not found")
		case errors.Is(err, service.ErrNotOwner):
			return forbidden(c, "Not allowed to edit this profile")
		}
		h.logger.Error("teacher profile update failed", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data":    teacher,
	})
}
