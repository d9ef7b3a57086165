package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories"
)

// RankingModel names the scoring model in ranking responses.
const RankingModel = "bag-of-words tf + cosine"

// Caller is the identity of whoever asks for a vacancy. The zero value is an
// unauthenticated caller.
type Caller struct {
	UserID string
	Role   models.Role
}

func (c Caller) Authenticated() bool {
	return c.Role != ""
}

// CanViewRanking reports whether the caller may see candidates and scores.
func (c Caller) CanViewRanking() bool {
	return c.Role == models.RoleAdmin || c.Role == models.RoleHR
}

// VacancyView is either a RestrictedView or a FullView.
type VacancyView interface {
	isVacancyView()
}

// RestrictedView carries vacancy metadata only.
type RestrictedView struct {
	Vacancy models.Vacancy `json:"vacancy"`
}

// FullView carries the vacancy and its candidates ranked by descending score.
type FullView struct {
	Vacancy    models.Vacancy    `json:"vacancy"`
	Candidates []RankedCandidate `json:"candidates"`
	Stats      RankingStats      `json:"stats"`
	Model      string            `json:"model"`
}

func (RestrictedView) isVacancyView() {}
func (FullView) isVacancyView()       {}

type RankingStats struct {
	TotalCandidates int `json:"totalCandidates"`
}

type RankedCandidate struct {
	models.Candidate
	Score        float64     `json:"score"`
	Explanation  Explanation `json:"explanation"`
	Inconsistent bool        `json:"inconsistent"`
	Diffs        *SkillDiffs `json:"diffs,omitempty"`
}

type RankingService interface {
	VacancyDetails(ctx context.Context, vacancyID uuid.UUID, caller Caller) (VacancyView, error)
}

type rankingService struct {
	vacancyRepo   repositories.VacancyRepository
	candidateRepo repositories.CandidateRepository
	log           *zap.Logger
}

func NewRankingService(
	vacancyRepo repositories.VacancyRepository,
	candidateRepo repositories.CandidateRepository,
	log *zap.Logger,
) RankingService {
	return &rankingService{
		vacancyRepo:   vacancyRepo,
		candidateRepo: candidateRepo,
		log:           log,
	}
}

// VacancyDetails implements RankingService. It only reads.
func (r *rankingService) VacancyDetails(ctx context.Context, vacancyID uuid.UUID, caller Caller) (VacancyView, error) {
	vacancy, err := r.vacancyRepo.FindByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVacancyNotFound, vacancyID)
		}
		return nil, fmt.Errorf("failed to load vacancy: %w", err)
	}

	if !caller.CanViewRanking() {
		r.log.Debug("restricted vacancy view", zap.String("vacancy_id", vacancyID.String()), zap.String("role", roleLabel(caller)))
		return RestrictedView{Vacancy: *vacancy}, nil
	}

	candidates, err := r.candidateRepo.FindByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	baselines, err := r.loadBaselines(ctx, vacancyID, candidates)
	if err != nil {
		return nil, err
	}

	ranked := RankCandidates(NewVacancyVector(vacancy.Skills), candidates, baselines)

	r.log.Info("ranked candidates",
		zap.String("vacancy_id", vacancyID.String()),
		zap.Int("candidates", len(ranked)),
		zap.Int("vacancy_tokens", len(vacancy.Skills)),
	)

	return FullView{
		Vacancy:    *vacancy,
		Candidates: ranked,
		Stats:      RankingStats{TotalCandidates: len(candidates)},
		Model:      RankingModel,
	}, nil
}

// loadBaselines unions the parsed words of every other application sharing
// an email with one of candidates, keyed by lowercase email.
func (r *rankingService) loadBaselines(ctx context.Context, vacancyID uuid.UUID, candidates []models.Candidate) (map[string]*Baseline, error) {
	emails := newTokenSet()
	for _, c := range candidates {
		emails.add(strings.ToLower(c.Email))
	}

	baselines := make(map[string]*Baseline)
	if emails.size() == 0 {
		return baselines, nil
	}

	others, err := r.candidateRepo.FindOtherApplications(ctx, emails.list(), vacancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load other applications: %w", err)
	}

	for _, o := range others {
		key := strings.ToLower(o.Email)
		b, ok := baselines[key]
		if !ok {
			b = NewBaseline()
			baselines[key] = b
		}
		b.Add(o.ParsedWords)
	}
	return baselines, nil
}

// RankCandidates scores every candidate against the vacancy vector and sorts
// by descending score. The sort is stable, so equal scores keep the input
// order (application order when read from the repository).
func RankCandidates(vacancy TermVector, candidates []models.Candidate, baselines map[string]*Baseline) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		vec := NewCandidateVector(c.ParsedWords)
		inc := DetectInconsistency(c.ParsedWords, baselines[strings.ToLower(c.Email)])
		ranked = append(ranked, RankedCandidate{
			Candidate:    c,
			Score:        CosineSimilarity(vacancy, vec),
			Explanation:  Explain(vacancy, vec),
			Inconsistent: inc.Inconsistent,
			Diffs:        inc.Diffs,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func roleLabel(c Caller) string {
	if !c.Authenticated() {
		return "unauthenticated"
	}
	return string(c.Role)
}
