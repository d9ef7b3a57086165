package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	candidateRepo repositories.CandidateRepository
	log           *zap.Logger
}

func NewInterviewHandler(
	interviewRepo repositories.InterviewRepository,
	candidateRepo repositories.CandidateRepository,
	log *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo: interviewRepo,
		candidateRepo: candidateRepo,
		log:           log,
	}
}

// HandleList handles GET /interviews
func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	interviews, err := h.interviewRepo.FindAll(c.UserContext())
	if err != nil {
		h.log.Error("list interviews", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list interviews",
		})
	}
	if interviews == nil {
		interviews = []models.Interview{}
	}
	return c.JSON(interviews)
}

// HandleSchedule handles POST /interviews
func (h *InterviewHandler) HandleSchedule(c *fiber.Ctx) error {
	var req models.ScheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	candidateID := uuid.MustParse(req.CandidateID)
	if _, err := h.candidateRepo.FindByID(c.UserContext(), candidateID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Candidate not found",
			})
		}
		h.log.Error("load interview candidate", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to schedule interview",
		})
	}

	result := models.InterviewPending
	if req.Result != nil {
		result = *req.Result
	}

	interview := &models.Interview{
		ID:          uuid.New(),
		CandidateID: candidateID,
		ScheduledAt: req.ScheduledAt,
		Result:      result,
		Notes:       req.Notes,
		Feedback:    req.Feedback,
	}
	if err := h.interviewRepo.Create(c.UserContext(), interview); err != nil {
		h.log.Error("schedule interview", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to schedule interview",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(interview)
}

// HandleUpdate handles PUT /interviews/:id as a partial update.
func (h *InterviewHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	interview, err := h.interviewRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.interviewLookupError(c, err)
	}

	if req.ScheduledAt != nil {
		interview.ScheduledAt = *req.ScheduledAt
	}
	if req.Result != nil {
		interview.Result = *req.Result
	}
	if req.Notes != nil {
		interview.Notes = req.Notes
	}
	if req.Feedback != nil {
		interview.Feedback = req.Feedback
	}

	if err := h.interviewRepo.Update(c.UserContext(), interview); err != nil {
		return h.interviewLookupError(c, err)
	}
	return c.JSON(interview)
}

func (h *InterviewHandler) interviewLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interview not found",
		})
	}
	h.log.Error("interview repository", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process interview",
	})
}
