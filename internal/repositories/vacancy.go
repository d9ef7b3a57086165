package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/recruitment-ranker/internal/models"
)

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *models.Vacancy) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vacancy, error)
	FindAll(ctx context.Context) ([]models.Vacancy, error)
	Update(ctx context.Context, vacancy *models.Vacancy) error
	// Delete removes the vacancy. With cascade it first removes the vacancy's
	// candidates with their interviews and resume documents in the same
	// transaction.
	Delete(ctx context.Context, id uuid.UUID, cascade bool) error
}

type vacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &vacancyRepository{db: db}
}

func (r *vacancyRepository) Create(ctx context.Context, vacancy *models.Vacancy) error {
	if err := r.db.WithContext(ctx).Create(vacancy).Error; err != nil {
		return fmt.Errorf("failed to create vacancy: %w", err)
	}
	return nil
}

func (r *vacancyRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vacancy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vacancy %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find vacancy: %w", err)
	}
	return &vacancy, nil
}

func (r *vacancyRepository) FindAll(ctx context.Context) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&vacancies).Error; err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	return vacancies, nil
}

func (r *vacancyRepository) Update(ctx context.Context, vacancy *models.Vacancy) error {
	result := r.db.WithContext(ctx).Model(vacancy).Select("*").Updates(vacancy)
	if result.Error != nil {
		return fmt.Errorf("failed to update vacancy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vacancy %s: %w", vacancy.ID, ErrNotFound)
	}
	return nil
}

func (r *vacancyRepository) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cascade {
			candidateIDs := tx.Model(&models.Candidate{}).Select("id").Where("vacancy_id = ?", id)
			if err := tx.Where("candidate_id IN (?)", candidateIDs).Delete(&models.Interview{}).Error; err != nil {
				return fmt.Errorf("failed to delete interviews: %w", err)
			}
			if err := tx.Where("candidate_id IN (?)", candidateIDs).Delete(&models.ResumeDocument{}).Error; err != nil {
				return fmt.Errorf("failed to delete resume documents: %w", err)
			}
			if err := tx.Where("vacancy_id = ?", id).Delete(&models.Candidate{}).Error; err != nil {
				return fmt.Errorf("failed to delete candidates: %w", err)
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.Vacancy{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete vacancy: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("vacancy %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
