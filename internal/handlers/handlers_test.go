package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-ranker/internal/config"
	"alfredoptarigan/recruitment-ranker/internal/middleware"
	"alfredoptarigan/recruitment-ranker/internal/models"
	"alfredoptarigan/recruitment-ranker/internal/repositories/memory"
	"alfredoptarigan/recruitment-ranker/internal/services"
)

const recruitment = "/api/v1/recruitment"

type testServer struct {
	app   *fiber.App
	store *memory.Store
	jwt   *middleware.JWTService
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	log := zap.NewNop()

	cfg := &config.Config{
		Storage:   config.StorageConfig{UploadPath: t.TempDir(), MaxFileSize: 1 << 20},
		RateLimit: config.RateLimitConfig{Max: rateLimit, Window: time.Minute},
	}

	store := memory.NewStore()
	storage := services.NewStorageService(cfg.Storage.UploadPath)
	require.NoError(t, storage.EnsureUploadDir())

	applications := services.NewApplicationService(
		store.Vacancies,
		store.Candidates,
		store.Documents,
		storage,
		services.NewTextExtractor(log),
		services.NewSkillExtractor(services.DefaultSkillRules(), log),
		log,
	)
	ranking := services.NewRankingService(store.Vacancies, store.Candidates, log)
	jwtService := middleware.NewJWTService("test-secret", 1)

	app := NewApp(cfg, false)
	Router{
		Vacancies:    NewVacancyHandler(store.Vacancies, store.Candidates, ranking, log),
		Applications: NewApplyHandler(applications, cfg.Storage.MaxFileSize, log),
		Candidates:   NewCandidateHandler(store.Candidates, applications, log),
		Interviews:   NewInterviewHandler(store.Interviews, store.Candidates, log),
		Tokens:       jwtService,
	}.Register(app)

	return &testServer{app: app, store: store, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := s.jwt.GenerateToken("user-"+string(role), role)
	require.NoError(t, err)
	return token
}

func (s *testServer) vacancy(t *testing.T, skills ...string) *models.Vacancy {
	t.Helper()
	v := &models.Vacancy{Title: "Backend Engineer", Skills: skills, Status: models.VacancyOpen}
	require.NoError(t, s.store.Vacancies.Create(context.Background(), v))
	return v
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) (int, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func applyRequest(t *testing.T, vacancyID string, fields map[string]string, filename string, resume []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(resume)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("%s/vacancies/%s/apply", recruitment, vacancyID), &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeObject(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}
