package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

func TestHandleDetails_RestrictedForPublic(t *testing.T) {
	s := newTestServer(t, 100)
	v := s.vacancy(t, "python")
	require.NoError(t, s.store.Candidates.Create(context.Background(), &models.Candidate{VacancyID: v.ID, Email: "a@example.com", ParsedWords: []string{"python"}}))

	for _, token := range []string{"", s.token(t, models.RoleCandidate), s.token(t, models.RoleEmployee), "garbage"} {
		status, body := s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies/"+v.ID.String(), nil), token)
		require.Equal(t, http.StatusOK, status)

		out := decodeObject(t, body)
		assert.Contains(t, out, "vacancy")
		assert.NotContains(t, out, "candidates")
		assert.NotContains(t, out, "stats")
	}
}

func TestHandleDetails_FullForHR(t *testing.T) {
	s := newTestServer(t, 100)
	v := s.vacancy(t, "python", "docker", "aws")
	ctx := context.Background()
	require.NoError(t, s.store.Candidates.Create(ctx, &models.Candidate{VacancyID: v.ID, Email: "partial@example.com", ParsedWords: []string{"python", "java"}}))
	require.NoError(t, s.store.Candidates.Create(ctx, &models.Candidate{VacancyID: v.ID, Email: "perfect@example.com", ParsedWords: []string{"python", "docker", "aws"}}))

	status, body := s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies/"+v.ID.String(), nil), s.token(t, models.RoleHR))
	require.Equal(t, http.StatusOK, status)

	var view services.FullView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, v.ID, view.Vacancy.ID)
	assert.Equal(t, 2, view.Stats.TotalCandidates)
	require.Len(t, view.Candidates, 2)
	assert.Equal(t, "perfect@example.com", view.Candidates[0].Email)
	assert.InDelta(t, 1.0, view.Candidates[0].Score, 1e-9)
	assert.InDelta(t, 0.408, view.Candidates[1].Score, 1e-3)
	assert.Equal(t, []string{"python"}, view.Candidates[1].Explanation.Overlap)

	raw := decodeObject(t, body)
	first := raw["candidates"].([]any)[0].(map[string]any)
	assert.Contains(t, first, "score")
	assert.Contains(t, first, "explanation")
	assert.NotContains(t, first, "diffs")
}

func TestHandleDetails_Errors(t *testing.T) {
	s := newTestServer(t, 100)

	status, _ := s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies/"+uuid.NewString(), nil), "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies/not-a-uuid", nil), "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid id format", decodeObject(t, body)["error"])
}

func TestHandleList_Public(t *testing.T) {
	s := newTestServer(t, 100)

	status, body := s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies", nil), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	s.vacancy(t, "go")
	status, body = s.do(t, jsonRequest(t, http.MethodGet, recruitment+"/vacancies", nil), "")
	require.Equal(t, http.StatusOK, status)
	var list []models.Vacancy
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestHandleCreate(t *testing.T) {
	s := newTestServer(t, 100)
	payload := map[string]any{"title": "  Platform Engineer ", "skills": []string{"go", "kubernetes"}}

	status, _ := s.do(t, jsonRequest(t, http.MethodPost, recruitment+"/vacancies", payload), "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, jsonRequest(t, http.MethodPost, recruitment+"/vacancies", payload), s.token(t, models.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, jsonRequest(t, http.MethodPost, recruitment+"/vacancies", payload), s.token(t, models.RoleHR))
	require.Equal(t, http.StatusCreated, status)

	var created models.Vacancy
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Platform Engineer", created.Title)
	assert.Equal(t, models.VacancyOpen, created.Status)
	assert.Equal(t, []string{"go", "kubernetes"}, []string(created.Skills))

	status, body = s.do(t, jsonRequest(t, http.MethodPost, recruitment+"/vacancies", map[string]any{"title": " "}), s.token(t, models.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decodeObject(t, body), "fields")

	status, _ = s.do(t, jsonRequest(t, http.MethodPost, recruitment+"/vacancies", map[string]any{"title": "x", "status": "DRAFT"}), s.token(t, models.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandleUpdate_Partial(t *testing.T) {
	s := newTestServer(t, 100)
	v := s.vacancy(t, "go")
	path := recruitment + "/vacancies/" + v.ID.String()

	status, body := s.do(t, jsonRequest(t, http.MethodPut, path, map[string]any{"status": "CLOSED"}), s.token(t, models.RoleHR))
	require.Equal(t, http.StatusOK, status)

	var updated models.Vacancy
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, models.VacancyClosed, updated.Status)
	assert.Equal(t, "Backend Engineer", updated.Title)
	assert.Equal(t, []string{"go"}, []string(updated.Skills))

	status, _ = s.do(t, jsonRequest(t, http.MethodPut, recruitment+"/vacancies/"+uuid.NewString(), map[string]any{"title": "x"}), s.token(t, models.RoleHR))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandleDelete_ConflictThenForce(t *testing.T) {
	s := newTestServer(t, 100)
	v := s.vacancy(t, "go")
	c := &models.Candidate{VacancyID: v.ID, Email: "a@example.com"}
	require.NoError(t, s.store.Candidates.Create(context.Background(), c))
	require.NoError(t, s.store.Interviews.Create(context.Background(), &models.Interview{CandidateID: c.ID, ScheduledAt: time.Now()}))
	path := recruitment + "/vacancies/" + v.ID.String()
	admin := s.token(t, models.RoleAdmin)

	status, _ := s.do(t, jsonRequest(t, http.MethodDelete, path, nil), admin)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(t, jsonRequest(t, http.MethodDelete, path+"?force=true", nil), admin)
	assert.Equal(t, http.StatusNoContent, status)

	_, err := s.store.Candidates.FindByID(context.Background(), c.ID)
	assert.Error(t, err)
	interviews, err := s.store.Interviews.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, interviews)

	status, _ = s.do(t, jsonRequest(t, http.MethodDelete, path, nil), admin)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	for i := 0; i < 2; i++ {
		status, _ := s.do(t, jsonRequest(t, http.MethodGet, "/api/v1/health", nil), "")
		require.Equal(t, http.StatusOK, status)
	}

	status, body := s.do(t, jsonRequest(t, http.MethodGet, "/api/v1/health", nil), "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.JSONEq(t, `{"error":"Too Many Requests"}`, string(body))
}
