package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "APPLIED"
	CandidateScreening CandidateStatus = "SCREENING"
	CandidateInterview CandidateStatus = "INTERVIEW"
	CandidateOffer     CandidateStatus = "OFFER"
	CandidateHired     CandidateStatus = "HIRED"
	CandidateRejected  CandidateStatus = "REJECTED"
)

// Candidate is one application of a person (keyed by email) to one vacancy.
// ParsedWords holds the skill tokens extracted from the latest resume.
type Candidate struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VacancyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"vacancyId"`
	FirstName   string          `gorm:"type:text" json:"firstName"`
	LastName    string          `gorm:"type:text" json:"lastName"`
	Email       string          `gorm:"type:text;not null;index" json:"email"`
	Status      CandidateStatus `gorm:"type:text;not null;default:'APPLIED'" json:"status"`
	CoverLetter *string         `gorm:"type:text" json:"coverLetter,omitempty"`
	Tags        pq.StringArray  `gorm:"type:text[]" json:"tags"`
	ParsedWords pq.StringArray  `gorm:"type:text[]" json:"parsedWords"`
	Duplicate   bool            `gorm:"not null;default:false" json:"duplicate"`
	CreatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Vacancy *Vacancy `gorm:"foreignKey:VacancyID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
