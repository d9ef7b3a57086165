package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/middleware"
	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

type VacancyHandler struct {
	vacancyRepo    repositories.VacancyRepository
	candidateRepo  repositories.CandidateRepository
	rankingService services.RankingService
	log            *zap.Logger
}

func NewVacancyHandler(
	vacancyRepo repositories.VacancyRepository,
	candidateRepo repositories.CandidateRepository,
	rankingService services.RankingService,
	log *zap.Logger,
) *VacancyHandler {
	return &VacancyHandler{
		vacancyRepo:    vacancyRepo,
		candidateRepo:  candidateRepo,
		rankingService: rankingService,
		log:            log,
	}
}

// HandleList handles GET /vacancies
func (h *VacancyHandler) HandleList(c *fiber.Ctx) error {
	vacancies, err := h.vacancyRepo.FindAll(c.UserContext())
	if err != nil {
		h.log.Error("list vacancies", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list vacancies",
		})
	}
	if vacancies == nil {
		vacancies = []models.Vacancy{}
	}
	return c.JSON(vacancies)
}

// HandleDetails handles GET /vacancies/:id. Candidates and scores are only
// included for callers allowed to see the ranking.
func (h *VacancyHandler) HandleDetails(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := h.rankingService.VacancyDetails(c.UserContext(), id, middleware.CallerFrom(c))
	if err != nil {
		if errors.Is(err, services.ErrVacancyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Vacancy not found",
			})
		}
		h.log.Error("vacancy details", zap.String("vacancy_id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load vacancy",
		})
	}

	switch v := view.(type) {
	case services.FullView:
		return c.JSON(v)
	case services.RestrictedView:
		return c.JSON(v)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "unknown vacancy view")
	}
}

// HandleCreate handles POST /vacancies
func (h *VacancyHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	status := req.Status
	if status == "" {
		status = models.VacancyOpen
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	vacancy := &models.Vacancy{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Skills:       skills,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Status:       status,
	}
	if err := h.vacancyRepo.Create(c.UserContext(), vacancy); err != nil {
		h.log.Error("create vacancy", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create vacancy",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(vacancy)
}

// HandleUpdate handles PUT /vacancies/:id as a partial update.
func (h *VacancyHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	vacancy, err := h.vacancyRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.vacancyLookupError(c, err)
	}

	if req.Title != nil {
		vacancy.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		vacancy.Description = *req.Description
	}
	if req.Skills != nil {
		vacancy.Skills = req.Skills
	}
	if req.DepartmentID != nil {
		vacancy.DepartmentID = req.DepartmentID
	}
	if req.PositionID != nil {
		vacancy.PositionID = req.PositionID
	}
	if req.Status != nil {
		vacancy.Status = *req.Status
	}

	if err := h.vacancyRepo.Update(c.UserContext(), vacancy); err != nil {
		return h.vacancyLookupError(c, err)
	}
	return c.JSON(vacancy)
}

// HandleDelete handles DELETE /vacancies/:id?force=true. Without force a
// vacancy that still has candidates is refused.
func (h *VacancyHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	force := strings.EqualFold(c.Query("force"), "true")

	if !force {
		count, err := h.candidateRepo.CountByVacancy(c.UserContext(), id)
		if err != nil {
			h.log.Error("count candidates", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to delete vacancy",
			})
		}
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Cannot delete vacancy with related candidates. Remove related records or close the vacancy.",
			})
		}
	}

	if err := h.vacancyRepo.Delete(c.UserContext(), id, force); err != nil {
		return h.vacancyLookupError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *VacancyHandler) vacancyLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Vacancy not found",
		})
	}
	h.log.Error("vacancy repository", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process vacancy",
	})
}
