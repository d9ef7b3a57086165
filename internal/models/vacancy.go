package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type VacancyStatus string

const (
	VacancyOpen   VacancyStatus = "OPEN"
	VacancyOnHold VacancyStatus = "ON_HOLD"
	VacancyClosed VacancyStatus = "CLOSED"
)

type Vacancy struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string         `gorm:"type:text;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	DepartmentID *string        `gorm:"type:text" json:"departmentId,omitempty"`
	PositionID   *string        `gorm:"type:text" json:"positionId,omitempty"`
	Status       VacancyStatus  `gorm:"type:text;not null;default:'OPEN'" json:"status"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}
