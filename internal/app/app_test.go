package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidar/blitz-entry/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Host:           "127.0.0.1",
			EntryPath:      "/CoveoBlitz",
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Roster: config.RosterConfig{
			Source:   config.RosterSourceFile,
			File:     filepath.Join("..", "..", "data", "teamMember.json"),
			TeamName: "Beautiful Brown",
		},
		Log:     config.LogConfig{Level: "dev"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newInitializedApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Initialize(context.Background()))
	return a
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestInitialize_MissingRosterFile(t *testing.T) {
	cfg := testConfig()
	cfg.Roster.File = filepath.Join(t.TempDir(), "missing.json")

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Error(t, a.Initialize(context.Background()))
}

func TestApp_EntryEndpoint(t *testing.T) {
	a := newInitializedApp(t, testConfig())
	require.NotEmpty(t, a.Team().Members)

	body := `{"q":"laval","paragraphs":{"1":"Université LAVAL","2":"McGill","3":"ulaval.ca"}}`
	req := httptest.NewRequest(http.MethodPost, "/CoveoBlitz", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TeamName          string            `json:"teamName"`
		TeamMembers       []json.RawMessage `json:"teamMembers"`
		MatchedParagraphs []int             `json:"matchedParagraphs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Beautiful Brown", resp.TeamName)
	assert.Len(t, resp.TeamMembers, len(a.Team().Members))
	assert.Equal(t, []int{1, 3}, resp.MatchedParagraphs)
}

func TestApp_EntryEndpoint_MissingQuery(t *testing.T) {
	a := newInitializedApp(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/CoveoBlitz", strings.NewReader(`{"paragraphs":{"1":"x"}}`))
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_EntryEndpoint_OnlyPost(t *testing.T) {
	a := newInitializedApp(t, testConfig())

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/CoveoBlitz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestApp_EntryEndpoint_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 16
	a := newInitializedApp(t, cfg)

	body := `{"q":"x","paragraphs":{"1":"` + strings.Repeat("x", 64) + `"}}`
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/CoveoBlitz", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApp_HealthAndMetrics(t *testing.T) {
	a := newInitializedApp(t, testConfig())

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestApp_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	a := newInitializedApp(t, cfg)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_CustomEntryPath(t *testing.T) {
	cfg := testConfig()
	cfg.Server.EntryPath = "/entry"
	a := newInitializedApp(t, cfg)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/entry", strings.NewReader(`{"q":"x"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_Shutdown(t *testing.T) {
	a := newInitializedApp(t, testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}
