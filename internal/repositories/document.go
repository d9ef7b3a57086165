package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/recruitment-ranker/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *models.ResumeDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ResumeDocument, error)
	FindLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (*models.ResumeDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(ctx context.Context, document *models.ResumeDocument) error {
	if err := d.db.WithContext(ctx).Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ResumeDocument, error) {
	var doc models.ResumeDocument
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// FindLatestByCandidate implements DocumentRepository.
func (d *documentRepository) FindLatestByCandidate(ctx context.Context, candidateID uuid.UUID) (*models.ResumeDocument, error) {
	var doc models.ResumeDocument
	err := d.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume for candidate %s: %w", candidateID, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find resume document: %w", err)
	}

	return &doc, nil
}
