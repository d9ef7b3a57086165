package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

type ApplyHandler struct {
	applicationService services.ApplicationService
	maxFileSize        int64
	log                *zap.Logger
}

func NewApplyHandler(
	applicationService services.ApplicationService,
	maxFileSize int64,
	log *zap.Logger,
) *ApplyHandler {
	return &ApplyHandler{
		applicationService: applicationService,
		maxFileSize:        maxFileSize,
		log:                log,
	}
}

// HandleApply handles POST /vacancies/:id/apply with an optional "resume"
// file. Re-applying with the same email updates the existing application.
func (h *ApplyHandler) HandleApply(c *fiber.Ctx) error {
	vacancyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var resume *multipart.FileHeader
	if file, err := c.FormFile("resume"); err == nil {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
			})
		}
		resume = file
	}

	result, err := h.applicationService.Apply(c.UserContext(), services.ApplyInput{
		VacancyID:   vacancyID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CoverLetter: req.CoverLetter,
		Resume:      resume,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVacancyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Vacancy not found",
			})
		case errors.Is(err, services.ErrEmailRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is required",
			})
		}
		h.log.Error("apply to vacancy", zap.String("vacancy_id", vacancyID.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit application",
		})
	}

	if result.Created {
		return c.Status(fiber.StatusCreated).JSON(result.Candidate)
	}
	return c.JSON(result.Candidate)
}
