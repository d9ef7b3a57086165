package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/logger"
	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
)

type ApplyInput struct {
	VacancyID   uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	CoverLetter string
	// Resume is optional.
	Resume *multipart.FileHeader
}

// CreateCandidateInput is a candidate entered by staff rather than through
// the apply form. Skills become the parsed words as given.
type CreateCandidateInput struct {
	VacancyID uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Tags      []string
	Skills    []string
	Status    models.CandidateStatus
}

type ApplyResult struct {
	Candidate *models.Candidate
	// Created is false when an existing application was updated in place.
	Created bool
}

// ApplicationService handles apply and re-apply: it stores the resume,
// parses it into skill tokens, and upserts the candidate.
type ApplicationService interface {
	Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error)
	CreateCandidate(ctx context.Context, in CreateCandidateInput) (*models.Candidate, error)
	ParseResume(filePath string) []string
	ResumeFor(ctx context.Context, candidateID uuid.UUID) (*models.ResumeDocument, error)
}

type applicationService struct {
	vacancyRepo    repositories.VacancyRepository
	candidateRepo  repositories.CandidateRepository
	docRepo        repositories.DocumentRepository
	storageService StorageService
	textExtractor  TextExtractor
	skillExtractor SkillExtractor
	log            *zap.Logger
}

func NewApplicationService(
	vacancyRepo repositories.VacancyRepository,
	candidateRepo repositories.CandidateRepository,
	docRepo repositories.DocumentRepository,
	storageService StorageService,
	textExtractor TextExtractor,
	skillExtractor SkillExtractor,
	log *zap.Logger,
) ApplicationService {
	return &applicationService{
		vacancyRepo:    vacancyRepo,
		candidateRepo:  candidateRepo,
		docRepo:        docRepo,
		storageService: storageService,
		textExtractor:  textExtractor,
		skillExtractor: skillExtractor,
		log:            log,
	}
}

// ParseResume implements ApplicationService: text extraction followed by
// skill extraction. Unreadable files yield no tokens.
func (a *applicationService) ParseResume(filePath string) []string {
	text := a.textExtractor.ExtractText(filePath)
	if strings.TrimSpace(text) == "" {
		a.log.Warn("no text extracted from resume", zap.String("path", filePath))
		return []string{}
	}

	skills := a.skillExtractor.ExtractSkills(text)
	a.log.Info("skills extracted from resume",
		zap.String("path", filePath),
		zap.Int("skills", len(skills)),
		zap.String("preview", logger.Preview(strings.Join(skills, ", "), 120)),
	)
	return skills
}

// Apply implements ApplicationService.
func (a *applicationService) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	if _, err := a.vacancyRepo.FindByID(ctx, in.VacancyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVacancyNotFound, in.VacancyID)
		}
		return nil, fmt.Errorf("failed to load vacancy: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	var (
		storedName  string
		storedPath  string
		parsedWords []string
	)
	if in.Resume != nil {
		name, path, err := a.storageService.SaveFile(in.Resume, "resume")
		if err != nil {
			return nil, fmt.Errorf("failed to store resume: %w", err)
		}
		storedName, storedPath = name, path
		parsedWords = a.ParseResume(storedPath)
	}

	candidate, created, err := a.upsertCandidate(ctx, in, email, parsedWords)
	if err != nil {
		if storedName != "" {
			a.discardUpload(storedName)
		}
		return nil, err
	}

	if storedName != "" {
		doc := &models.ResumeDocument{
			ID:               uuid.New(),
			CandidateID:      candidate.ID,
			Filename:         storedName,
			OriginalFileName: in.Resume.Filename,
			FileType:         models.FileTypeFromName(in.Resume.Filename),
			FilePath:         storedPath,
		}
		if err := a.docRepo.Create(ctx, doc); err != nil {
			a.discardUpload(storedName)
			return nil, fmt.Errorf("failed to record resume: %w", err)
		}
	}

	return &ApplyResult{Candidate: candidate, Created: created}, nil
}

// discardUpload removes a stored resume whose database rows were not written.
func (a *applicationService) discardUpload(name string) {
	if err := a.storageService.DeleteFile(name); err != nil {
		a.log.Warn("failed to remove orphaned upload", zap.String("file", name), zap.Error(err))
	}
}

// CreateCandidate implements ApplicationService. Unlike Apply it refuses an
// email that already applied to the vacancy.
func (a *applicationService) CreateCandidate(ctx context.Context, in CreateCandidateInput) (*models.Candidate, error) {
	if _, err := a.vacancyRepo.FindByID(ctx, in.VacancyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVacancyNotFound, in.VacancyID)
		}
		return nil, fmt.Errorf("failed to load vacancy: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	_, err := a.candidateRepo.FindByVacancyAndEmail(ctx, in.VacancyID, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrCandidateExists, email)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up application: %w", err)
	}

	duplicate, err := a.candidateRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		if t := NormalizeToken(s); t != "" {
			words = append(words, t)
		}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	status := in.Status
	if status == "" {
		status = models.CandidateApplied
	}

	candidate := &models.Candidate{
		ID:          uuid.New(),
		VacancyID:   in.VacancyID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       email,
		Status:      status,
		Tags:        tags,
		ParsedWords: words,
		Duplicate:   duplicate,
	}
	if err := a.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	a.log.Info("candidate created by staff", zap.String("candidate_id", candidate.ID.String()), zap.Bool("duplicate", duplicate))
	return candidate, nil
}

func (a *applicationService) upsertCandidate(ctx context.Context, in ApplyInput, email string, parsedWords []string) (*models.Candidate, bool, error) {
	existing, err := a.candidateRepo.FindByVacancyAndEmail(ctx, in.VacancyID, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up application: %w", err)
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	coverLetter := optionalString(in.CoverLetter)

	if existing != nil {
		if firstName != "" {
			existing.FirstName = firstName
		}
		if lastName != "" {
			existing.LastName = lastName
		}
		if coverLetter != nil {
			existing.CoverLetter = coverLetter
		}
		// An unreadable re-upload keeps the previous tokens.
		if len(parsedWords) > 0 {
			existing.ParsedWords = parsedWords
		}
		if existing.Status == "" {
			existing.Status = models.CandidateApplied
		}
		if err := a.candidateRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("failed to update application: %w", err)
		}
		a.log.Info("application updated", zap.String("candidate_id", existing.ID.String()), zap.Int("skills", len(existing.ParsedWords)))
		return existing, false, nil
	}

	duplicate, err := a.candidateRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}

	if parsedWords == nil {
		parsedWords = []string{}
	}
	candidate := &models.Candidate{
		ID:          uuid.New(),
		VacancyID:   in.VacancyID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Status:      models.CandidateApplied,
		CoverLetter: coverLetter,
		Tags:        []string{},
		ParsedWords: parsedWords,
		Duplicate:   duplicate,
	}
	if err := a.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, false, fmt.Errorf("failed to create application: %w", err)
	}
	a.log.Info("application created",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Bool("duplicate", duplicate),
		zap.Int("skills", len(parsedWords)),
	)
	return candidate, true, nil
}

// ResumeFor implements ApplicationService: the candidate's latest resume
// whose file is still on disk.
func (a *applicationService) ResumeFor(ctx context.Context, candidateID uuid.UUID) (*models.ResumeDocument, error) {
	if _, err := a.candidateRepo.FindByID(ctx, candidateID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
		}
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	doc, err := a.docRepo.FindLatestByCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	if !a.storageService.Exists(doc.Filename) {
		return nil, fmt.Errorf("%w: file missing", ErrResumeNotFound)
	}
	return doc, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
