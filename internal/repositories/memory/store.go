// Package memory provides in-memory implementations of the repository
// interfaces. They back the service and handler tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
)

// Ensure Store implements the repository interfaces.
var (
	_ repositories.VacancyRepository   = (*VacancyStore)(nil)
	_ repositories.CandidateRepository = (*CandidateStore)(nil)
	_ repositories.DocumentRepository  = (*DocumentStore)(nil)
	_ repositories.InterviewRepository = (*InterviewStore)(nil)
)

// Store groups the stores over shared state so cascading deletes behave
// like the database.
type Store struct {
	mu         sync.RWMutex
	vacancies  []models.Vacancy
	candidates []models.Candidate
	documents  []models.ResumeDocument
	interviews []models.Interview
	now        func() time.Time

	Vacancies  *VacancyStore
	Candidates *CandidateStore
	Documents  *DocumentStore
	Interviews *InterviewStore
}

func NewStore() *Store {
	s := &Store{now: time.Now}
	s.Vacancies = &VacancyStore{s: s}
	s.Candidates = &CandidateStore{s: s}
	s.Documents = &DocumentStore{s: s}
	s.Interviews = &InterviewStore{s: s}
	return s
}

// SetClock overrides the timestamp source used for new rows.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, repositories.ErrNotFound)
}

// VacancyStore implements repositories.VacancyRepository.
type VacancyStore struct{ s *Store }

func (v *VacancyStore) Create(_ context.Context, vacancy *models.Vacancy) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if vacancy.ID == uuid.Nil {
		vacancy.ID = uuid.New()
	}
	if vacancy.CreatedAt.IsZero() {
		vacancy.CreatedAt = v.s.now()
	}
	vacancy.UpdatedAt = vacancy.CreatedAt
	v.s.vacancies = append(v.s.vacancies, cloneVacancy(*vacancy))
	return nil
}

func (v *VacancyStore) FindByID(_ context.Context, id uuid.UUID) (*models.Vacancy, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, vacancy := range v.s.vacancies {
		if vacancy.ID == id {
			out := cloneVacancy(vacancy)
			return &out, nil
		}
	}
	return nil, notFound("vacancy", id)
}

func (v *VacancyStore) FindAll(_ context.Context) ([]models.Vacancy, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.Vacancy, 0, len(v.s.vacancies))
	for _, vacancy := range v.s.vacancies {
		out = append(out, cloneVacancy(vacancy))
	}
	return out, nil
}

func (v *VacancyStore) Update(_ context.Context, vacancy *models.Vacancy) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.vacancies {
		if v.s.vacancies[i].ID == vacancy.ID {
			vacancy.UpdatedAt = v.s.now()
			v.s.vacancies[i] = cloneVacancy(*vacancy)
			return nil
		}
	}
	return notFound("vacancy", vacancy.ID)
}

func (v *VacancyStore) Delete(_ context.Context, id uuid.UUID, cascade bool) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	idx := slices.IndexFunc(v.s.vacancies, func(x models.Vacancy) bool { return x.ID == id })
	if idx < 0 {
		return notFound("vacancy", id)
	}
	if cascade {
		removed := map[uuid.UUID]bool{}
		v.s.candidates = slices.DeleteFunc(v.s.candidates, func(c models.Candidate) bool {
			if c.VacancyID == id {
				removed[c.ID] = true
				return true
			}
			return false
		})
		v.s.documents = slices.DeleteFunc(v.s.documents, func(d models.ResumeDocument) bool {
			return removed[d.CandidateID]
		})
		v.s.interviews = slices.DeleteFunc(v.s.interviews, func(i models.Interview) bool {
			return removed[i.CandidateID]
		})
	}
	v.s.vacancies = slices.Delete(v.s.vacancies, idx, idx+1)
	return nil
}

// CandidateStore implements repositories.CandidateRepository. Rows are kept
// in insertion order, which doubles as application order.
type CandidateStore struct{ s *Store }

func (c *CandidateStore) Create(_ context.Context, candidate *models.Candidate) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = c.s.now()
	}
	candidate.UpdatedAt = candidate.CreatedAt
	c.s.candidates = append(c.s.candidates, cloneCandidate(*candidate))
	return nil
}

func (c *CandidateStore) Update(_ context.Context, candidate *models.Candidate) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for i := range c.s.candidates {
		if c.s.candidates[i].ID == candidate.ID {
			candidate.UpdatedAt = c.s.now()
			c.s.candidates[i] = cloneCandidate(*candidate)
			return nil
		}
	}
	return notFound("candidate", candidate.ID)
}

func (c *CandidateStore) Delete(_ context.Context, id uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	idx := slices.IndexFunc(c.s.candidates, func(x models.Candidate) bool { return x.ID == id })
	if idx < 0 {
		return notFound("candidate", id)
	}
	c.s.candidates = slices.Delete(c.s.candidates, idx, idx+1)
	c.s.documents = slices.DeleteFunc(c.s.documents, func(d models.ResumeDocument) bool {
		return d.CandidateID == id
	})
	c.s.interviews = slices.DeleteFunc(c.s.interviews, func(i models.Interview) bool {
		return i.CandidateID == id
	})
	return nil
}

func (c *CandidateStore) FindByID(_ context.Context, id uuid.UUID) (*models.Candidate, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, candidate := range c.s.candidates {
		if candidate.ID == id {
			out := cloneCandidate(candidate)
			return &out, nil
		}
	}
	return nil, notFound("candidate", id)
}

func (c *CandidateStore) FindAll(_ context.Context) ([]models.Candidate, error) {
	return c.filter(func(models.Candidate) bool { return true }), nil
}

func (c *CandidateStore) FindByVacancy(_ context.Context, vacancyID uuid.UUID) ([]models.Candidate, error) {
	return c.filter(func(x models.Candidate) bool { return x.VacancyID == vacancyID }), nil
}

func (c *CandidateStore) FindByVacancyAndEmail(_ context.Context, vacancyID uuid.UUID, email string) (*models.Candidate, error) {
	found := c.filter(func(x models.Candidate) bool {
		return x.VacancyID == vacancyID && strings.EqualFold(x.Email, email)
	})
	if len(found) == 0 {
		return nil, notFound("candidate", email)
	}
	return &found[0], nil
}

func (c *CandidateStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	found := c.filter(func(x models.Candidate) bool { return strings.EqualFold(x.Email, email) })
	return len(found) > 0, nil
}

func (c *CandidateStore) CountByVacancy(ctx context.Context, vacancyID uuid.UUID) (int64, error) {
	found, _ := c.FindByVacancy(ctx, vacancyID)
	return int64(len(found)), nil
}

func (c *CandidateStore) FindOtherApplications(_ context.Context, emails []string, excludeVacancyID uuid.UUID) ([]models.Candidate, error) {
	return c.filter(func(x models.Candidate) bool {
		if x.VacancyID == excludeVacancyID {
			return false
		}
		return slices.ContainsFunc(emails, func(e string) bool { return strings.EqualFold(e, x.Email) })
	}), nil
}

func (c *CandidateStore) filter(keep func(models.Candidate) bool) []models.Candidate {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var out []models.Candidate
	for _, candidate := range c.s.candidates {
		if keep(candidate) {
			out = append(out, cloneCandidate(candidate))
		}
	}
	return out
}

func cloneVacancy(v models.Vacancy) models.Vacancy {
	v.Skills = slices.Clone(v.Skills)
	return v
}

func cloneCandidate(c models.Candidate) models.Candidate {
	c.ParsedWords = slices.Clone(c.ParsedWords)
	c.Tags = slices.Clone(c.Tags)
	return c
}

// DocumentStore implements repositories.DocumentRepository.
type DocumentStore struct{ s *Store }

func (d *DocumentStore) Create(_ context.Context, document *models.ResumeDocument) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	if document.CreatedAt.IsZero() {
		document.CreatedAt = d.s.now()
	}
	d.s.documents = append(d.s.documents, *document)
	return nil
}

func (d *DocumentStore) FindByID(_ context.Context, id uuid.UUID) (*models.ResumeDocument, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	for _, doc := range d.s.documents {
		if doc.ID == id {
			out := doc
			return &out, nil
		}
	}
	return nil, notFound("document", id)
}

// FindLatestByCandidate returns the most recently inserted document; inserts
// are chronological so the last match wins.
func (d *DocumentStore) FindLatestByCandidate(_ context.Context, candidateID uuid.UUID) (*models.ResumeDocument, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	for i := len(d.s.documents) - 1; i >= 0; i-- {
		if d.s.documents[i].CandidateID == candidateID {
			out := d.s.documents[i]
			return &out, nil
		}
	}
	return nil, notFound("resume for candidate", candidateID)
}

// InterviewStore implements repositories.InterviewRepository.
type InterviewStore struct{ s *Store }

func (i *InterviewStore) Create(_ context.Context, interview *models.Interview) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = i.s.now()
	}
	interview.UpdatedAt = interview.CreatedAt
	stored := *interview
	stored.Candidate = nil
	i.s.interviews = append(i.s.interviews, stored)
	return nil
}

func (i *InterviewStore) FindByID(_ context.Context, id uuid.UUID) (*models.Interview, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	for _, interview := range i.s.interviews {
		if interview.ID == id {
			out := interview
			return &out, nil
		}
	}
	return nil, notFound("interview", id)
}

// FindAll attaches each interview's candidate and orders by schedule, like
// the gorm repository.
func (i *InterviewStore) FindAll(_ context.Context) ([]models.Interview, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	out := make([]models.Interview, 0, len(i.s.interviews))
	for _, interview := range i.s.interviews {
		for _, c := range i.s.candidates {
			if c.ID == interview.CandidateID {
				candidate := cloneCandidate(c)
				interview.Candidate = &candidate
				break
			}
		}
		out = append(out, interview)
	}
	slices.SortStableFunc(out, func(a, b models.Interview) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	return out, nil
}

func (i *InterviewStore) Update(_ context.Context, interview *models.Interview) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	for idx := range i.s.interviews {
		if i.s.interviews[idx].ID == interview.ID {
			interview.UpdatedAt = i.s.now()
			stored := *interview
			stored.Candidate = nil
			i.s.interviews[idx] = stored
			return nil
		}
	}
	return notFound("interview", interview.ID)
}
