package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewResult string

const (
	InterviewPending InterviewResult = "PENDING"
	InterviewPass    InterviewResult = "PASS"
	InterviewFail    InterviewResult = "FAIL"
)

// Interview is one scheduled interview of a candidate.
type Interview struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID       `gorm:"type:uuid;not null;index" json:"candidateId"`
	ScheduledAt time.Time       `gorm:"not null" json:"scheduledAt"`
	Result      InterviewResult `gorm:"type:text;not null;default:'PENDING'" json:"result"`
	Notes       *string         `gorm:"type:text" json:"notes,omitempty"`
	Feedback    *string         `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Candidate *Candidate `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}
