package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"ratemyschedule/backend/config"
	"ratemyschedule/backend/models"
	"ratemyschedule/backend/routes"
	"ratemyschedule/backend/storage"
	"ratemyschedule/backend/utils"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	cfg       *config.Config
	uploadDir string
}

type option func(cfg *config.Config, deps *routes.Deps)

func withEnv(env string) option {
	return func(cfg *config.Config, _ *routes.Deps) { cfg.Env = env }
}

func withCache(cache utils.Cache) option {
	return func(_ *config.Config, deps *routes.Deps) { deps.Cache = cache }
}

func withMailer(m utils.Mailer) option {
	return func(_ *config.Config, deps *routes.Deps) { deps.Mailer = m }
}

// newTestEnv wires the full app against a private in-memory SQLite database.
func newTestEnv(t *testing.T, opts ...option) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Env:          "development",
		CORSOrigin:   "*",
		DBDriver:     "sqlite",
		DBPath:       "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		JWTSecret:    "testsecret",
		AdminHandles: []string{"root"},
		CacheTTL:     time.Minute,
	}

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	logger := utils.InitLogger(utils.LoggerConfig{Output: io.Discard})
	deps := routes.Deps{
		Logger:  logger,
		Cache:   utils.NopCache{},
		Storage: store,
		Parser:  utils.NewScheduleParser(rand.New(rand.NewSource(1))),
	}
	for _, opt := range opts {
		opt(cfg, &deps)
	}

	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, cfg, deps)

	return &testEnv{app: app, db: db, cfg: cfg, uploadDir: dir}
}

func (e *testEnv) send(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp, body
}

// request sends a JSON request; token may be empty.
func (e *testEnv) request(t *testing.T, method, path string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

// register creates a user and returns its token and id.
func (e *testEnv) register(t *testing.T, handle string) (string, string) {
	t.Helper()
	resp, body := e.request(t, "POST", "/api/users/register", map[string]string{
		"handle":   handle,
		"password": "secret",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("dev-admin", models.RoleAdmin, e.cfg)
	require.NoError(t, err)
	return token
}

func schedulePayload(college, major, level string) map[string]interface{} {
	return map[string]interface{}{
		"title":       "My fall",
		"term":        "Fall 2024",
		"collegeSlug": college,
		"major":       major,
		"level":       level,
		"events": []map[string]interface{}{
			{"title": "Calculus II", "day_of_week": 2, "start_time": "08:00", "end_time": "09:30"},
		},
	}
}

// createSchedule posts a schedule and returns its id.
func (e *testEnv) createSchedule(t *testing.T, college, major, level, token string) string {
	t.Helper()
	resp, body := e.request(t, "POST", "/api/schedules", schedulePayload(college, major, level), token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	return body["schedule"].(map[string]interface{})["id"].(string)
}

// insertSchedule bypasses the API so tests can control timestamps and counters.
func (e *testEnv) insertSchedule(t *testing.T, s models.Schedule) models.Schedule {
	t.Helper()
	if s.Term == "" {
		s.Term = "Fall 2024"
	}
	if s.Level == "" {
		s.Level = models.LevelFreshman
	}
	require.NoError(t, e.db.Create(&s).Error)
	return s
}

func items(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	list, ok := body["items"].([]interface{})
	require.True(t, ok, "items missing: %v", body)
	return list
}

type sentMail struct {
	mu    sync.Mutex
	mails []utils.Mail
	err   error
}

func (m *sentMail) Send(mail utils.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.mails = append(m.mails, mail)
	return nil
}
