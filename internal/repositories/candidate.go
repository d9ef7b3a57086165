package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/recruitment-ranker/internal/models"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	Update(ctx context.Context, candidate *models.Candidate) error
	// Delete removes the candidate with its interviews and resume documents.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	FindAll(ctx context.Context) ([]models.Candidate, error)
	// FindByVacancy returns the vacancy's candidates ordered by application
	// time, oldest first.
	FindByVacancy(ctx context.Context, vacancyID uuid.UUID) ([]models.Candidate, error)
	FindByVacancyAndEmail(ctx context.Context, vacancyID uuid.UUID, email string) (*models.Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByVacancy(ctx context.Context, vacancyID uuid.UUID) (int64, error)
	// FindOtherApplications returns candidates whose email matches one of
	// emails case-insensitively and whose vacancy is not excludeVacancyID.
	FindOtherApplications(ctx context.Context, emails []string, excludeVacancyID uuid.UUID) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, candidate *models.Candidate) error {
	// Updates, unlike Save, never falls back to an insert.
	result := r.db.WithContext(ctx).Model(candidate).Select("*").Omit("Vacancy").Updates(candidate)
	if result.Error != nil {
		return fmt.Errorf("failed to update candidate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", candidate.ID, ErrNotFound)
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", id).Delete(&models.Interview{}).Error; err != nil {
			return fmt.Errorf("failed to delete interviews: %w", err)
		}
		if err := tx.Where("candidate_id = ?", id).Delete(&models.ResumeDocument{}).Error; err != nil {
			return fmt.Errorf("failed to delete resume documents: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Candidate{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete candidate: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindByVacancy(ctx context.Context, vacancyID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ?", vacancyID).
		Order("created_at ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates for vacancy: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindByVacancyAndEmail(ctx context.Context, vacancyID uuid.UUID, email string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ? AND LOWER(email) = ?", vacancyID, strings.ToLower(email)).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s for vacancy %s: %w", email, vacancyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check candidate email: %w", err)
	}
	return count > 0, nil
}

func (r *candidateRepository) CountByVacancy(ctx context.Context, vacancyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("vacancy_id = ?", vacancyID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

func (r *candidateRepository) FindOtherApplications(ctx context.Context, emails []string, excludeVacancyID uuid.UUID) ([]models.Candidate, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(e))
	}

	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Select("id", "email", "vacancy_id", "parsed_words", "created_at").
		Where("LOWER(email) IN ? AND vacancy_id <> ?", lowered, excludeVacancyID).
		Order("created_at ASC, id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find other applications: %w", err)
	}
	return candidates, nil
}
