package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencourt/uastack/internal/service/session"
	"github.com/avencourt/uastack/pkg/metrics"
)

func TestHealthEndpoint(t *testing.T) {
	mgr := session.NewManager(session.Config{MaxSessions: 4}, nil, nil, nil)
	router := NewRouter(mgr)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSessionsEndpoint(t *testing.T) {
	mgr := session.NewManager(session.Config{MaxSessions: 4}, nil, nil, nil)
	s, err := mgr.Create(1, false)
	require.NoError(t, err)
	mgr.IssueToken(s)

	router := NewRouter(mgr)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []session.SessionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, s.ID, infos[0].ID)
	assert.Equal(t, "Creating", infos[0].State)
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.Init()
	mgr := session.NewManager(session.Config{MaxSessions: 4}, nil, nil, nil)
	router := NewRouter(mgr)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
