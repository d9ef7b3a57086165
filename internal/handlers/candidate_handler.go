package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

type CandidateHandler struct {
	candidateRepo      repositories.CandidateRepository
	applicationService services.ApplicationService
	log                *zap.Logger
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	applicationService services.ApplicationService,
	log *zap.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo:      candidateRepo,
		applicationService: applicationService,
		log:                log,
	}
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll(c.UserContext())
	if err != nil {
		h.log.Error("list candidates", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return c.JSON(candidates)
}

// HandleCreate handles POST /candidates for candidates entered by staff.
func (h *CandidateHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	in := services.CreateCandidateInput{
		VacancyID: uuid.MustParse(req.VacancyID),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Tags:      req.Tags,
		Skills:    req.Skills,
	}
	if req.Status != nil {
		in.Status = *req.Status
	}

	candidate, err := h.applicationService.CreateCandidate(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVacancyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Vacancy not found",
			})
		case errors.Is(err, services.ErrCandidateExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Candidate already applied to this vacancy",
			})
		}
		h.log.Error("create candidate", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create candidate",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(candidate)
}

// HandleUpdate handles PUT /candidates/:id. Parsed words are owned by the
// apply flow and cannot be edited here.
func (h *CandidateHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	candidate, err := h.candidateRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.candidateLookupError(c, err)
	}

	if req.FirstName != nil {
		candidate.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		candidate.LastName = *req.LastName
	}
	if req.Tags != nil {
		candidate.Tags = req.Tags
	}
	if req.Status != nil {
		candidate.Status = *req.Status
	}

	if err := h.candidateRepo.Update(c.UserContext(), candidate); err != nil {
		return h.candidateLookupError(c, err)
	}
	return c.JSON(candidate)
}

// HandleDelete handles DELETE /candidates/:id
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.candidateRepo.Delete(c.UserContext(), id); err != nil {
		return h.candidateLookupError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDownloadResume handles GET /candidates/:id/resume
func (h *CandidateHandler) HandleDownloadResume(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	doc, err := h.applicationService.ResumeFor(c.UserContext(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCandidateNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		case errors.Is(err, services.ErrResumeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		h.log.Error("download resume", zap.String("candidate_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resume",
		})
	}

	return c.Download(doc.FilePath, doc.OriginalFileName)
}

func (h *CandidateHandler) candidateLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}
	h.log.Error("candidate repository", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process candidate",
	})
}
