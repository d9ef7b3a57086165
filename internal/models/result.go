package models

import "time"

type CreateVacancyRequest struct {
	Title        string        `json:"title" validate:"required,min=1"`
	Description  string        `json:"description"`
	Skills       []string      `json:"skills" validate:"omitempty,dive,required"`
	DepartmentID *string       `json:"departmentId"`
	PositionID   *string       `json:"positionId"`
	Status       VacancyStatus `json:"status" validate:"omitempty,oneof=OPEN ON_HOLD CLOSED"`
}

// UpdateVacancyRequest is a partial update; nil fields are left untouched.
type UpdateVacancyRequest struct {
	Title        *string        `json:"title" validate:"omitempty,min=1"`
	Description  *string        `json:"description"`
	Skills       []string       `json:"skills" validate:"omitempty,dive,required"`
	DepartmentID *string        `json:"departmentId"`
	PositionID   *string        `json:"positionId"`
	Status       *VacancyStatus `json:"status" validate:"omitempty,oneof=OPEN ON_HOLD CLOSED"`
}

// ApplyRequest only requires a non-blank email; staff-created candidates
// are held to a well-formed address.
type ApplyRequest struct {
	Email       string `form:"email" validate:"required"`
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	CoverLetter string `form:"coverLetter"`
}

type UpdateCandidateRequest struct {
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Tags      []string         `json:"tags"`
	Status    *CandidateStatus `json:"status" validate:"omitempty,oneof=APPLIED SCREENING INTERVIEW OFFER HIRED REJECTED"`
}

type CreateCandidateRequest struct {
	VacancyID string           `json:"vacancyId" validate:"required,uuid"`
	FirstName string           `json:"firstName" validate:"required"`
	LastName  string           `json:"lastName" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	Tags      []string         `json:"tags"`
	Skills    []string         `json:"skills" validate:"omitempty,dive,required"`
	Status    *CandidateStatus `json:"status" validate:"omitempty,oneof=APPLIED SCREENING INTERVIEW OFFER HIRED REJECTED"`
}

type ScheduleInterviewRequest struct {
	CandidateID string           `json:"candidateId" validate:"required,uuid"`
	ScheduledAt time.Time        `json:"scheduledAt" validate:"required"`
	Result      *InterviewResult `json:"result" validate:"omitempty,oneof=PASS FAIL PENDING"`
	Notes       *string          `json:"notes"`
	Feedback    *string          `json:"feedback"`
}

// UpdateInterviewRequest is a partial update; nil fields are left untouched.
type UpdateInterviewRequest struct {
	ScheduledAt *time.Time       `json:"scheduledAt"`
	Result      *InterviewResult `json:"result" validate:"omitempty,oneof=PASS FAIL PENDING"`
	Notes       *string          `json:"notes"`
	Feedback    *string          `json:"feedback"`
}
