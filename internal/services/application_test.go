package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
	"alfredoptarigan/recruitment-ranker/internal/repositories/memory"
)

type applicationFixture struct {
	store   *memory.Store
	storage StorageService
	service ApplicationService
	vacancy *models.Vacancy
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	log := zap.NewNop()
	store := memory.NewStore()
	storage := NewStorageService(t.TempDir())

	vacancy := &models.Vacancy{Title: "Backend", Skills: []string{"python", "docker"}}
	require.NoError(t, store.Vacancies.Create(context.Background(), vacancy))

	return &applicationFixture{
		store:   store,
		storage: storage,
		service: NewApplicationService(
			store.Vacancies,
			store.Candidates,
			store.Documents,
			storage,
			NewTextExtractor(log),
			NewSkillExtractor(DefaultSkillRules(), log),
			log,
		),
		vacancy: vacancy,
	}
}

func TestApply_CreatesCandidateWithParsedWords(t *testing.T) {
	f := newApplicationFixture(t)

	result, err := f.service.Apply(context.Background(), ApplyInput{
		VacancyID:   f.vacancy.ID,
		Email:       "  Jane@Example.com ",
		FirstName:   "Jane",
		LastName:    "Doe",
		CoverLetter: "Hello",
		Resume:      newFileHeader(t, "jane.txt", []byte("Skills:\nPython, Docker\n")),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	c := result.Candidate
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Equal(t, models.CandidateApplied, c.Status)
	assert.False(t, c.Duplicate)
	require.NotNil(t, c.CoverLetter)
	assert.Equal(t, "Hello", *c.CoverLetter)
	assert.ElementsMatch(t, []string{"python", "docker"}, []string(c.ParsedWords))

	doc, err := f.store.Documents.FindLatestByCandidate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane.txt", doc.OriginalFileName)
	assert.Equal(t, "txt", doc.FileType)
	assert.True(t, f.storage.Exists(doc.Filename))
}

func TestApply_WithoutResume(t *testing.T) {
	f := newApplicationFixture(t)

	result, err := f.service.Apply(context.Background(), ApplyInput{VacancyID: f.vacancy.ID, Email: "a@example.com"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotNil(t, result.Candidate.ParsedWords)
	assert.Empty(t, result.Candidate.ParsedWords)
	assert.Nil(t, result.Candidate.CoverLetter)
}

func TestApply_DuplicateAcrossVacancies(t *testing.T) {
	f := newApplicationFixture(t)
	other := &models.Vacancy{Title: "Data"}
	require.NoError(t, f.store.Vacancies.Create(context.Background(), other))

	first, err := f.service.Apply(context.Background(), ApplyInput{VacancyID: other.ID, Email: "jane@example.com"})
	require.NoError(t, err)
	assert.False(t, first.Candidate.Duplicate)

	second, err := f.service.Apply(context.Background(), ApplyInput{VacancyID: f.vacancy.ID, Email: "JANE@example.com"})
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.True(t, second.Candidate.Duplicate)
}

func TestApply_ReapplyUpdatesInPlace(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	first, err := f.service.Apply(ctx, ApplyInput{
		VacancyID:   f.vacancy.ID,
		Email:       "jane@example.com",
		FirstName:   "Jane",
		CoverLetter: "First letter",
		Resume:      newFileHeader(t, "v1.txt", []byte("Skills:\nPython\n")),
	})
	require.NoError(t, err)

	// An unreadable resume keeps the previous tokens, and blank fields keep
	// the previous values.
	second, err := f.service.Apply(ctx, ApplyInput{
		VacancyID: f.vacancy.ID,
		Email:     "Jane@Example.com",
		LastName:  "Doe",
		Resume:    newFileHeader(t, "v2.docx", []byte("not parsed")),
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Candidate.ID, second.Candidate.ID)
	assert.Equal(t, "Jane", second.Candidate.FirstName)
	assert.Equal(t, "Doe", second.Candidate.LastName)
	require.NotNil(t, second.Candidate.CoverLetter)
	assert.Equal(t, "First letter", *second.Candidate.CoverLetter)
	assert.Equal(t, []string{"python"}, []string(second.Candidate.ParsedWords))

	count, err := f.store.Candidates.CountByVacancy(ctx, f.vacancy.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	doc, err := f.service.ResumeFor(ctx, second.Candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2.docx", doc.OriginalFileName)

	third, err := f.service.Apply(ctx, ApplyInput{
		VacancyID: f.vacancy.ID,
		Email:     "jane@example.com",
		Resume:    newFileHeader(t, "v3.txt", []byte("Skills:\nDocker\n")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docker"}, []string(third.Candidate.ParsedWords))
}

func TestApply_VacancyNotFound(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.service.Apply(context.Background(), ApplyInput{VacancyID: uuid.New(), Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrVacancyNotFound)
}

func TestApply_EmailRequired(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.service.Apply(context.Background(), ApplyInput{VacancyID: f.vacancy.ID, Email: "   "})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestResumeFor(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.service.ResumeFor(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	noResume, err := f.service.Apply(ctx, ApplyInput{VacancyID: f.vacancy.ID, Email: "a@example.com"})
	require.NoError(t, err)
	_, err = f.service.ResumeFor(ctx, noResume.Candidate.ID)
	assert.ErrorIs(t, err, ErrResumeNotFound)

	withResume, err := f.service.Apply(ctx, ApplyInput{
		VacancyID: f.vacancy.ID,
		Email:     "b@example.com",
		Resume:    newFileHeader(t, "b.txt", []byte("Go")),
	})
	require.NoError(t, err)
	doc, err := f.service.ResumeFor(ctx, withResume.Candidate.ID)
	require.NoError(t, err)

	require.NoError(t, os.Remove(doc.FilePath))
	_, err = f.service.ResumeFor(ctx, withResume.Candidate.ID)
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestParseResume_Unreadable(t *testing.T) {
	f := newApplicationFixture(t)
	words := f.service.ParseResume(writeTemp(t, "cv.pdf", []byte("garbage")))
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestCreateCandidate(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateCandidate(ctx, CreateCandidateInput{
		VacancyID: f.vacancy.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane@Example.com",
		Skills:    []string{" Python ", "", "Docker"},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, models.CandidateApplied, created.Status)
	assert.Equal(t, []string{"python", "docker"}, []string(created.ParsedWords))
	assert.NotNil(t, created.Tags)

	_, err = f.service.CreateCandidate(ctx, CreateCandidateInput{VacancyID: f.vacancy.ID, Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrCandidateExists)

	_, err = f.service.CreateCandidate(ctx, CreateCandidateInput{VacancyID: uuid.New(), Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrVacancyNotFound)
}

func TestCreateCandidate_DuplicateFlag(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	other := &models.Vacancy{Title: "Data"}
	require.NoError(t, f.store.Vacancies.Create(ctx, other))

	_, err := f.service.Apply(ctx, ApplyInput{VacancyID: other.ID, Email: "jane@example.com"})
	require.NoError(t, err)

	created, err := f.service.CreateCandidate(ctx, CreateCandidateInput{
		VacancyID: f.vacancy.ID,
		Email:     "jane@example.com",
		Status:    models.CandidateScreening,
	})
	require.NoError(t, err)
	assert.True(t, created.Duplicate)
	assert.Equal(t, models.CandidateScreening, created.Status)
}

type failingDocuments struct {
	repositories.DocumentRepository
}

func (failingDocuments) Create(context.Context, *models.ResumeDocument) error {
	return errors.New("insert failed")
}

type undeletableStorage struct {
	StorageService
}

func (undeletableStorage) DeleteFile(string) error {
	return errors.New("permission denied")
}

func TestApply_LogsOrphanedUpload(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)
	store := memory.NewStore()
	vacancy := &models.Vacancy{Title: "Backend"}
	require.NoError(t, store.Vacancies.Create(context.Background(), vacancy))

	service := NewApplicationService(
		store.Vacancies,
		store.Candidates,
		failingDocuments{store.Documents},
		undeletableStorage{NewStorageService(t.TempDir())},
		NewTextExtractor(log),
		NewSkillExtractor(DefaultSkillRules(), log),
		log,
	)

	_, err := service.Apply(context.Background(), ApplyInput{
		VacancyID: vacancy.ID,
		Email:     "a@example.com",
		Resume:    newFileHeader(t, "cv.txt", []byte("Skills:\nGo\n")),
	})
	require.Error(t, err)

	orphaned := logs.FilterMessage("failed to remove orphaned upload").All()
	require.Len(t, orphaned, 1)
	assert.Contains(t, orphaned[0].ContextMap()["error"], "permission denied")
}
