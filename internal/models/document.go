package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumeDocument is one uploaded resume file. Rows are never updated; a newer
// upload for the same candidate supersedes the older one.
type ResumeDocument struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID      uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"originalFilename"`
	FileType         string    `gorm:"type:text" json:"fileType"`
	FilePath         string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`
}

func (d *ResumeDocument) TableName() string {
	return "resume_documents"
}

// FileTypeFromName returns the lowercased extension of name without the dot.
func FileTypeFromName(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
